package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, snap *CartSnapshot) error
	Update(ctx context.Context, db *gorm.DB, snap *CartSnapshot) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CartSnapshot, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID string) ([]CartSnapshot, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]CartSnapshot, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
