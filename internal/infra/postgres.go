package infra

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripplanner/internal/models/db_models"
)

func InitPostgresql(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))
		return nil, err
	}

	if err := connectionPool.AutoMigrate(&db_models.TripRecord{}); err != nil {
		logger.Error("error migrating trip archive", zap.Error(err))
		return nil, err
	}

	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("error closing database connection", zap.Error(err))
	} else {
		logger.Info("postgres connection closed")
	}
}

func StartTransaction(db *gorm.DB, logger *zap.Logger) *gorm.DB {
	tx := db.Begin()
	if tx.Error != nil {
		logger.Warn("error starting transaction", zap.Error(tx.Error))
	}
	return tx
}

func ReleaseTransaction(tx *gorm.DB, err error, logger *zap.Logger) {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			logger.Warn("error rolling back transaction", zap.Error(rollbackErr))
		}
		return
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		logger.Warn("error committing transaction", zap.Error(commitErr))
	}
}
