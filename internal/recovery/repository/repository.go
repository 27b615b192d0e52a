package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
)

type repo struct{}

// Provide returns the gorm-backed abandonment record repository.
func Provide() domain.Repository {
	return repo{}
}

func (repo) Insert(ctx context.Context, db *gorm.DB, record *domain.AbandonmentRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (repo) Update(ctx context.Context, db *gorm.DB, record *domain.AbandonmentRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

func (repo) FindBySession(ctx context.Context, db *gorm.DB, sessionID string) (*domain.AbandonmentRecord, error) {
	var record domain.AbandonmentRecord
	err := db.WithContext(ctx).First(&record, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.AbandonmentRecord, error) {
	var records []domain.AbandonmentRecord
	if err := db.WithContext(ctx).Order("abandoned_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
