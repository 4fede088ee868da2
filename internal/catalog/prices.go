package catalog

import "tripplanner/internal/models/trip_models"

type Continent string

const (
	ContinentNorthAmerica Continent = "North America"
	ContinentSouthAmerica Continent = "South America"
	ContinentEurope       Continent = "Europe"
	ContinentAfrica       Continent = "Africa"
	ContinentAsia         Continent = "Asia"
	ContinentOceania      Continent = "Oceania"
	ContinentAntarctica   Continent = "Antarctica"
	ContinentUnknown      Continent = "Unknown"
)

type bounds struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

type continentBox struct {
	continent Continent
	box       bounds
}

// Boxes overlap; the first containing box wins.
var continentBoxes = []continentBox{
	{ContinentNorthAmerica, bounds{7, 83, -168, -52}},
	{ContinentSouthAmerica, bounds{-56, 13, -82, -34}},
	{ContinentEurope, bounds{34, 72, -25, 60}},
	{ContinentAfrica, bounds{-35, 37, -18, 52}},
	{ContinentAsia, bounds{1, 77, 25, 180}},
	{ContinentOceania, bounds{-50, 0, 110, 180}},
	{ContinentAntarctica, bounds{-90, -60, -180, 180}},
}

// ContinentOf resolves p by bounding-box containment.
func ContinentOf(p trip_models.LatLng) Continent {
	for _, cb := range continentBoxes {
		b := cb.box
		if p.Latitude >= b.minLat && p.Latitude <= b.maxLat &&
			p.Longitude >= b.minLon && p.Longitude <= b.maxLon {
			return cb.continent
		}
	}
	return ContinentUnknown
}

var continentCurrency = map[Continent]string{
	ContinentNorthAmerica: "USD",
	ContinentSouthAmerica: "BRL",
	ContinentEurope:       "EUR",
	ContinentAfrica:       "ZAR",
	ContinentAsia:         "CNY",
	ContinentOceania:      "AUD",
}

const DefaultCurrency = "USD"

// CurrencyOf returns the currency used for estimates in c.
func CurrencyOf(c Continent) string {
	if cur, ok := continentCurrency[c]; ok {
		return cur
	}
	return DefaultCurrency
}

// averagePrice values are in the continent's currency.
var averagePrice = map[trip_models.Category]map[Continent]float64{
	trip_models.CategoryCultural: {
		ContinentEurope: 22, ContinentNorthAmerica: 10, ContinentSouthAmerica: 20,
		ContinentAsia: 60, ContinentAfrica: 50, ContinentOceania: 20,
	},
	trip_models.CategoryHistoric: {
		ContinentEurope: 15, ContinentNorthAmerica: 15, ContinentSouthAmerica: 30,
		ContinentAsia: 40, ContinentAfrica: 80, ContinentOceania: 25,
	},
	trip_models.CategoryOutdoor: {
		ContinentEurope: 10, ContinentNorthAmerica: 35, ContinentSouthAmerica: 50,
		ContinentAsia: 60, ContinentAfrica: 100, ContinentOceania: 20,
	},
	trip_models.CategoryShopping: {
		ContinentEurope: 40, ContinentNorthAmerica: 50, ContinentSouthAmerica: 200,
		ContinentAsia: 500, ContinentAfrica: 500, ContinentOceania: 80,
	},
	trip_models.CategoryFood: {
		ContinentEurope: 10, ContinentNorthAmerica: 15, ContinentSouthAmerica: 25,
		ContinentAsia: 100, ContinentAfrica: 100, ContinentOceania: 15,
	},
	trip_models.CategoryEntertainment: {
		ContinentEurope: 12, ContinentNorthAmerica: 14, ContinentSouthAmerica: 20,
		ContinentAsia: 100, ContinentAfrica: 100, ContinentOceania: 20,
	},
	trip_models.CategoryTransportation: {
		ContinentEurope: 3, ContinentNorthAmerica: 2.9, ContinentSouthAmerica: 5,
		ContinentAsia: 3, ContinentAfrica: 8, ContinentOceania: 4,
	},
	trip_models.CategoryAccommodation: {
		ContinentEurope: 80, ContinentNorthAmerica: 175, ContinentSouthAmerica: 200,
		ContinentAsia: 500, ContinentAfrica: 800, ContinentOceania: 96,
	},
	trip_models.CategoryWellness: {
		ContinentEurope: 20, ContinentNorthAmerica: 25, ContinentSouthAmerica: 100,
		ContinentAsia: 200, ContinentAfrica: 200, ContinentOceania: 40,
	},
	trip_models.CategorySports: {
		ContinentEurope: 30, ContinentNorthAmerica: 50, ContinentSouthAmerica: 100,
		ContinentAsia: 100, ContinentAfrica: 100, ContinentOceania: 50,
	},
	trip_models.CategoryNightlife: {
		ContinentEurope: 10, ContinentNorthAmerica: 12, ContinentSouthAmerica: 30,
		ContinentAsia: 50, ContinentAfrica: 50, ContinentOceania: 18,
	},
	trip_models.CategoryLandmarks: {
		ContinentEurope: 20, ContinentNorthAmerica: 25, ContinentSouthAmerica: 100,
		ContinentAsia: 60, ContinentAfrica: 200, ContinentOceania: 40,
	},
}

// AveragePrice returns the typical ticket price for (c, continent) in that
// continent's currency.
func AveragePrice(c trip_models.Category, continent Continent) (float64, bool) {
	byContinent, ok := averagePrice[c]
	if !ok {
		return 0, false
	}
	p, ok := byContinent[continent]
	return p, ok
}

type band struct{ start, end float64 }

var usdBands = map[trip_models.PriceLevel]band{
	trip_models.PriceLevelFree:          {0, 0},
	trip_models.PriceLevelInexpensive:   {1, 15},
	trip_models.PriceLevelModerate:      {15, 40},
	trip_models.PriceLevelExpensive:     {40, 100},
	trip_models.PriceLevelVeryExpensive: {100, 200},
}

// Non-USD bands are the USD bands scaled by a rough purchasing factor.
var bandFactor = map[string]float64{
	"USD": 1,
	"EUR": 1,
	"AUD": 1.5,
	"BRL": 5,
	"ZAR": 18,
	"CNY": 7,
}

// PriceLevelBand maps a price level to a (start, end) range in currency.
// Unknown currencies use the USD band and report USD.
func PriceLevelBand(level trip_models.PriceLevel, currency string) (trip_models.PriceRange, bool) {
	b, ok := usdBands[level]
	if !ok {
		return trip_models.PriceRange{}, false
	}
	factor, known := bandFactor[currency]
	if !known {
		factor, currency = 1, DefaultCurrency
	}
	return trip_models.PriceRange{
		StartPrice: b.start * factor,
		EndPrice:   b.end * factor,
		Currency:   currency,
	}, true
}
