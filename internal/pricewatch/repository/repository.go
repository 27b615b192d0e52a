package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
)

type repo struct{}

// Provide returns the gorm-backed price watch repository.
func Provide() domain.Repository {
	return repo{}
}

func (repo) Insert(ctx context.Context, db *gorm.DB, watch *domain.PriceWatch) error {
	return db.WithContext(ctx).Create(watch).Error
}

func (repo) Update(ctx context.Context, db *gorm.DB, watch *domain.PriceWatch) error {
	return db.WithContext(ctx).Save(watch).Error
}

func (repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PriceWatch, error) {
	var watch domain.PriceWatch
	err := db.WithContext(ctx).First(&watch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &watch, nil
}

func (repo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID string, activeOnly bool) ([]domain.PriceWatch, error) {
	query := db.WithContext(ctx).Where("customer_id = ?", customerID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var watches []domain.PriceWatch
	if err := query.Order("id").Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

func (repo) ListActive(ctx context.Context, db *gorm.DB) ([]domain.PriceWatch, error) {
	var watches []domain.PriceWatch
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("id").
		Find(&watches).Error
	if err != nil {
		return nil, err
	}
	return watches, nil
}

func (repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Delete(&domain.PriceWatch{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
