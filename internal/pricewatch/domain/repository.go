package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, watch *PriceWatch) error
	Update(ctx context.Context, db *gorm.DB, watch *PriceWatch) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceWatch, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID string, activeOnly bool) ([]PriceWatch, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]PriceWatch, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
