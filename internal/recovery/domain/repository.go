package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *AbandonmentRecord) error
	Update(ctx context.Context, db *gorm.DB, record *AbandonmentRecord) error
	FindBySession(ctx context.Context, db *gorm.DB, sessionID string) (*AbandonmentRecord, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]AbandonmentRecord, error)
}
