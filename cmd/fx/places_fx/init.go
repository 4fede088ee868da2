package places_fx

import (
	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
)

var Module = fx.Provide(providePlacesClient)

func providePlacesClient(cfg *config.Config) services.VenueSearcher {
	return services.NewPlacesClient(cfg.PlacesServiceURL)
}
