package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tripplanner/internal/models/trip_models"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/utils"
)

// TripCacheRepository keeps the working copy of trips in the cache store.
type TripCacheRepository interface {
	SaveTrip(ctx context.Context, trip *trip_models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*trip_models.Trip, error)
	SavePools(ctx context.Context, tripID string, pools trip_models.PreRankedPools) error
	GetPools(ctx context.Context, tripID string) (trip_models.PreRankedPools, error)
	GetRadius(ctx context.Context, placeName string) (float64, bool, error)
	SaveRadius(ctx context.Context, placeName string, meters float64) error
}

type tripCacheRepository struct {
	store mem.Store
	ttl   time.Duration
}

func NewTripCacheRepository(store mem.Store, ttl time.Duration) TripCacheRepository {
	return &tripCacheRepository{store: store, ttl: ttl}
}

func tripKey(id string) string  { return "trip:" + id + ":response" }
func poolsKey(id string) string { return "trip:" + id + ":pre_ranked_places" }
func radiusKey(p string) string { return "radius:" + p }

func (r *tripCacheRepository) SaveTrip(ctx context.Context, trip *trip_models.Trip) error {
	return r.put(ctx, tripKey(trip.ID), trip)
}

func (r *tripCacheRepository) GetTrip(ctx context.Context, tripID string) (*trip_models.Trip, error) {
	var trip trip_models.Trip
	if err := r.get(ctx, tripKey(tripID), &trip); err != nil {
		if errors.Is(err, utils.ErrCacheMiss) {
			return nil, utils.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripCacheRepository) SavePools(ctx context.Context, tripID string, pools trip_models.PreRankedPools) error {
	return r.put(ctx, poolsKey(tripID), pools)
}

func (r *tripCacheRepository) GetPools(ctx context.Context, tripID string) (trip_models.PreRankedPools, error) {
	var pools trip_models.PreRankedPools
	if err := r.get(ctx, poolsKey(tripID), &pools); err != nil {
		if errors.Is(err, utils.ErrCacheMiss) {
			return nil, utils.ErrPreRankedPoolNotFound
		}
		return nil, err
	}
	return pools, nil
}

func (r *tripCacheRepository) GetRadius(ctx context.Context, placeName string) (float64, bool, error) {
	raw, err := r.store.Get(ctx, radiusKey(placeName))
	if errors.Is(err, utils.ErrCacheMiss) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return 0, false, nil
	}
	return v, true, nil
}

func (r *tripCacheRepository) SaveRadius(ctx context.Context, placeName string, meters float64) error {
	return r.store.Set(ctx, radiusKey(placeName), []byte(strconv.FormatFloat(meters, 'f', -1, 64)), r.ttl)
}

func (r *tripCacheRepository) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, raw, r.ttl)
}

func (r *tripCacheRepository) get(ctx context.Context, key string, v any) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
