package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, grant *ShareGrant) error
	Update(ctx context.Context, db *gorm.DB, grant *ShareGrant) error
	FindByToken(ctx context.Context, db *gorm.DB, token string) (*ShareGrant, error)
	ListByIssuer(ctx context.Context, db *gorm.DB, issuerID string) ([]ShareGrant, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
