package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

type repo struct{}

// Provide returns the gorm-backed snapshot repository.
func Provide() domain.Repository {
	return repo{}
}

func (repo) Insert(ctx context.Context, db *gorm.DB, snap *domain.CartSnapshot) error {
	return db.WithContext(ctx).Create(snap).Error
}

func (repo) Update(ctx context.Context, db *gorm.DB, snap *domain.CartSnapshot) error {
	return db.WithContext(ctx).Save(snap).Error
}

func (repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.CartSnapshot, error) {
	var snap domain.CartSnapshot
	err := db.WithContext(ctx).First(&snap, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID string) ([]domain.CartSnapshot, error) {
	var snaps []domain.CartSnapshot
	err := db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id").
		Find(&snaps).Error
	if err != nil {
		return nil, err
	}
	return snaps, nil
}

func (repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.CartSnapshot, error) {
	var snaps []domain.CartSnapshot
	if err := db.WithContext(ctx).Order("id").Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

func (repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Delete(&domain.CartSnapshot{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
