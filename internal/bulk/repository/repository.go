package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/domain"
)

type repo struct{}

// Provide returns the gorm-backed bulk operation history repository.
func Provide() domain.Repository {
	return repo{}
}

func (repo) Insert(ctx context.Context, db *gorm.DB, op *domain.BulkOperation) error {
	return db.WithContext(ctx).Create(op).Error
}

func (repo) List(ctx context.Context, db *gorm.DB, limit int) ([]domain.BulkOperation, error) {
	// Snowflake ids are time-ordered, so id desc is newest first.
	query := db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var ops []domain.BulkOperation
	if err := query.Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}
