package catalog

const DefaultDurationMinutes = 60

var durationByTag = map[string]int{
	"amusement_park":     180,
	"aquarium":           120,
	"art_gallery":        90,
	"bakery":             30,
	"bar":                60,
	"cafe":               45,
	"casino":             120,
	"museum":             120,
	"night_club":         180,
	"park":               90,
	"restaurant":         90,
	"shopping_mall":      120,
	"spa":                120,
	"tourist_attraction": 60,
	"zoo":                180,
}

// DurationMinutes returns the visit length of the first tag with a known
// duration, or DefaultDurationMinutes.
func DurationMinutes(tags []string) int {
	for _, t := range tags {
		if d, ok := durationByTag[t]; ok {
			return d
		}
	}
	return DefaultDurationMinutes
}
