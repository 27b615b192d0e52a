package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/domain"
)

type repo struct{}

// Provide returns the gorm-backed share grant repository.
func Provide() domain.Repository {
	return repo{}
}

func (repo) Insert(ctx context.Context, db *gorm.DB, grant *domain.ShareGrant) error {
	return db.WithContext(ctx).Create(grant).Error
}

func (repo) Update(ctx context.Context, db *gorm.DB, grant *domain.ShareGrant) error {
	return db.WithContext(ctx).Save(grant).Error
}

func (repo) FindByToken(ctx context.Context, db *gorm.DB, token string) (*domain.ShareGrant, error) {
	var grant domain.ShareGrant
	err := db.WithContext(ctx).First(&grant, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (repo) ListByIssuer(ctx context.Context, db *gorm.DB, issuerID string) ([]domain.ShareGrant, error) {
	var grants []domain.ShareGrant
	err := db.WithContext(ctx).
		Where("issuer_id = ?", issuerID).
		Order("id").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Delete(&domain.ShareGrant{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
