package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
)

// CartSnapshot is a named, persisted copy of a cart's contents.
type CartSnapshot struct {
	ID             snowflake.ID                   `gorm:"primaryKey" json:"id"`
	CustomerID     string                         `gorm:"type:text;not null;index" json:"customer_id"`
	Name           string                         `gorm:"type:text;not null" json:"name"`
	Description    string                         `gorm:"type:text" json:"description,omitempty"`
	Lines          datatypes.JSONSlice[cart.Line] `gorm:"type:json" json:"lines"`
	TotalValue     float64                        `gorm:"not null" json:"total_value"`
	TotalQuantity  int                            `gorm:"not null" json:"total_quantity"`
	IsPublic       bool                           `gorm:"not null;default:false" json:"is_public"`
	Tags           datatypes.JSONSlice[string]    `gorm:"type:json" json:"tags,omitempty"`
	Occasion       string                         `gorm:"type:text" json:"occasion,omitempty"`
	CreatedAt      time.Time                      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                      `gorm:"not null" json:"updated_at"`
	LastAccessedAt time.Time                      `gorm:"not null" json:"last_accessed_at"`
}

// TableName sets the database table name.
func (CartSnapshot) TableName() string { return "cart_snapshots" }

// DeriveTotals recomputes the stored totals from the current lines.
func (s *CartSnapshot) DeriveTotals() {
	s.TotalValue = cart.TotalValue(s.Lines)
	s.TotalQuantity = cart.TotalQuantity(s.Lines)
}
