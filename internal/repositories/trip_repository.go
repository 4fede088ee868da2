package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripplanner/internal/infra"
	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

// TripRepository is the durable archive of generated trips.
type TripRepository interface {
	Save(ctx context.Context, trip *trip_models.Trip) error
	FindByTripID(ctx context.Context, tripID string) (*trip_models.Trip, error)
}

type tripRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTripRepository(db *gorm.DB, logger *zap.Logger) TripRepository {
	return &tripRepository{db: db, logger: logger}
}

func (r *tripRepository) Save(ctx context.Context, trip *trip_models.Trip) error {
	payload, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encode trip %s: %w", trip.ID, err)
	}

	record := db_models.TripRecord{
		TripID:   trip.ID,
		TripType: string(trip.TripType),
		Payload:  string(payload),
	}
	switch {
	case trip.Itinerary != nil:
		record.Name = trip.Itinerary.Name
		record.StartDate = &trip.Itinerary.StartDate
		record.EndDate = &trip.Itinerary.EndDate
	case trip.Road != nil:
		record.Name = trip.Road.Name
	}

	tx := infra.StartTransaction(r.db.WithContext(ctx), r.logger)
	if tx.Error != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, tx.Error)
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "trip_type", "start_date", "end_date", "payload", "updated_at"}),
	}).Create(&record).Error
	infra.ReleaseTransaction(tx, err, r.logger)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (r *tripRepository) FindByTripID(ctx context.Context, tripID string) (*trip_models.Trip, error) {
	var record db_models.TripRecord
	err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	var trip trip_models.Trip
	if err := json.Unmarshal([]byte(record.Payload), &trip); err != nil {
		return nil, fmt.Errorf("decode trip %s: %w", tripID, err)
	}
	return &trip, nil
}

type noopTripRepository struct{}

// NewNoopTripRepository is used when no database is configured.
func NewNoopTripRepository() TripRepository {
	return noopTripRepository{}
}

func (noopTripRepository) Save(context.Context, *trip_models.Trip) error { return nil }

func (noopTripRepository) FindByTripID(context.Context, string) (*trip_models.Trip, error) {
	return nil, utils.ErrTripNotFound
}
