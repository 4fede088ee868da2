package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
	mem "tripplanner/pkg/memcache"
)

var Module = fx.Provide(
	services.NewCategoryScorer,
	services.NewPlaceRanker,
	services.NewPriceClassifier,
	services.NewRouteOptimizer,
	services.NewCorridorSegmenter,
	services.NewItineraryAssembler,
	provideTripService,
	provideRegenerationService)

type tripServiceParams struct {
	fx.In

	Scorer    services.CategoryScorerInterface
	Ranker    services.PlaceRankerInterface
	Pricer    services.PriceClassifierInterface
	Assembler services.ItineraryAssemblerInterface
	Segmenter services.CorridorSegmenterInterface
	Optimizer services.RouteOptimizerInterface
	Searcher  services.VenueSearcher
	Narrative services.NarrativeScheduler
	Refiner   services.NarrativeRefinerInterface
	Routing   services.RoutingServiceInterface
	Cache     repositories.TripCacheRepository
	Archive   repositories.TripRepository
	Logger    *zap.Logger
}

func provideTripService(p tripServiceParams) services.TripServiceInterface {
	return services.NewTripService(services.TripServiceDeps{
		Scorer:    p.Scorer,
		Ranker:    p.Ranker,
		Pricer:    p.Pricer,
		Assembler: p.Assembler,
		Segmenter: p.Segmenter,
		Optimizer: p.Optimizer,
		Searcher:  p.Searcher,
		Narrative: p.Narrative,
		Refiner:   p.Refiner,
		Routing:   p.Routing,
		Cache:     p.Cache,
		Archive:   p.Archive,
		Logger:    p.Logger,
	})
}

func provideRegenerationService(
	cache repositories.TripCacheRepository,
	archive repositories.TripRepository,
	leases mem.TripLeaseStore,
	routing services.RoutingServiceInterface,
	pricer services.PriceClassifierInterface,
	logger *zap.Logger,
) services.RegenerationServiceInterface {
	return services.NewRegenerationService(cache, archive, leases, routing, pricer, logger)
}
