package mem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/pkg/utils"
)

// DefaultLeaseTTL covers a regeneration that reroutes a full packed day.
const DefaultLeaseTTL = 2 * time.Minute

type TripLeaseStore interface {
	// Acquire takes the exclusive modification lease of tripID. It fails
	// with utils.ErrTripBusy while another holder owns it. The returned
	// context is cancelled when the lease expires or is released, so work
	// done under it cannot outlive the lease. release is safe to call more
	// than once.
	Acquire(ctx context.Context, tripID string) (leaseCtx context.Context, release func(), err error)
}

type TripLeases struct {
	store Store
	ttl   time.Duration
}

func NewTripLeases(store Store, ttl time.Duration) *TripLeases {
	if ttl <= 0 {
		ttl = DefaultLeaseTTL
	}
	return &TripLeases{store: store, ttl: ttl}
}

func leaseKey(tripID string) string { return "lease:trip:" + tripID }

func (l *TripLeases) Acquire(ctx context.Context, tripID string) (context.Context, func(), error) {
	key := leaseKey(tripID)
	token := []byte(uuid.NewString())

	ok, err := l.store.SetNX(ctx, key, token, l.ttl)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire lease %s: %w", tripID, err)
	}
	if !ok {
		return nil, nil, utils.ErrTripBusy
	}

	leaseCtx, cancel := context.WithTimeout(ctx, l.ttl)
	released := false
	return leaseCtx, func() {
		if released {
			return
		}
		released = true
		cancel()
		// only our own token is removed; an expired lease may belong to someone else now
		if _, err := l.store.DelIfValue(context.Background(), key, token); err != nil {
			zap.L().Warn("release trip lease", zap.String("trip_id", tripID), zap.Error(err))
		}
	}, nil
}
