package routing_fx

import (
	"time"

	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
)

// legMemoTTL bounds how long a computed leg is reused across requests.
const legMemoTTL = 30 * time.Minute

var Module = fx.Provide(provideRouteProvider, provideRoutingService)

func provideRouteProvider(cfg *config.Config) services.RouteProvider {
	return services.NewMapsRouteClient(cfg.MapsServiceURL)
}

func provideRoutingService(provider services.RouteProvider) services.RoutingServiceInterface {
	return services.NewRoutingService(provider, legMemoTTL)
}
