package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"adwiz/internal/models/db_models"
	"adwiz/pkg/logger"
)

// InitPostgresql opens the audit database and migrates its tables.
func InitPostgresql(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.AutoMigrate(&db_models.RelayCall{}); err != nil {
		return nil, fmt.Errorf("migrate relay calls: %w", err)
	}
	return db, nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.L().WithError(err).Error("error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.L().WithError(err).Error("error closing database connection")
	} else {
		logger.L().Info("PostgreSQL database connection closed successfully")
	}
}
