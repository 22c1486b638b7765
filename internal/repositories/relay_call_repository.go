package repositories

import (
	"context"

	"gorm.io/gorm"

	"adwiz/internal/models/db_models"
)

type RelayCallRepository interface {
	Record(ctx context.Context, call db_models.RelayCall) error
}

func NewRelayCallRepository(db *gorm.DB) RelayCallRepository {
	return &relayCallRepository{db: db}
}

type relayCallRepository struct {
	db *gorm.DB
}

func (r *relayCallRepository) Record(ctx context.Context, call db_models.RelayCall) error {
	return r.db.WithContext(ctx).Create(&call).Error
}

// NoopRelayCallRepository is used when no database is configured.
type NoopRelayCallRepository struct{}

func (NoopRelayCallRepository) Record(context.Context, db_models.RelayCall) error {
	return nil
}
