package utils

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrEmptyCategoryScores   = errors.New("category scores are empty")
	ErrNonPositiveSlotBudget = errors.New("slot budget must be positive")
	ErrInvalidRankingWeights = errors.New("ranking weights must sum to 1.0")
	ErrRouteTooLarge         = errors.New("too many stops for exact route optimization")

	ErrVenueSearchFailed = errors.New("venue search failed")
	ErrRoutingFailed     = errors.New("routing failed")
	ErrNarrativeFailed   = errors.New("narrative generation failed")

	ErrTripNotFound          = errors.New("trip not found")
	ErrPreRankedPoolNotFound = errors.New("pre-ranked places not found")
	ErrActivityNotFound      = errors.New("activity not found")
	ErrNoAlternativeVenue    = errors.New("no alternative venue available")
	ErrTripBusy              = errors.New("trip is being modified")

	ErrCacheMiss     = errors.New("cache miss")
	ErrDatabaseError = errors.New("database error")
)
