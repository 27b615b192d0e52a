package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Kind tags a bulk operation variant. Dispatch is a single exhaustive
// switch over these values.
type Kind string

const (
	KindQuantityUpdate Kind = "quantity_update"
	KindRemove         Kind = "remove"
	KindMoveToSnapshot Kind = "move_to_snapshot"
	KindApplyDiscount  Kind = "apply_discount"
	KindVariantChange  Kind = "variant_change"
)

// Valid reports whether the kind is recognized.
func (k Kind) Valid() bool {
	switch k {
	case KindQuantityUpdate, KindRemove, KindMoveToSnapshot, KindApplyDiscount, KindVariantChange:
		return true
	}
	return false
}

// BulkOperation is one executed bulk mutation. Rows are append-only; they
// are never edited or removed after execution.
type BulkOperation struct {
	ID            snowflake.ID                `gorm:"primaryKey" json:"id"`
	Kind          Kind                        `gorm:"type:text;not null" json:"kind"`
	TargetIDs     datatypes.JSONSlice[string] `gorm:"type:json" json:"target_ids"`
	Payload       datatypes.JSONMap           `gorm:"type:json" json:"payload,omitempty"`
	ExecutorID    string                      `gorm:"type:text;not null" json:"executor_id"`
	ExecutedAt    time.Time                   `gorm:"not null" json:"executed_at"`
	Success       bool                        `gorm:"not null" json:"success"`
	AffectedCount int                         `gorm:"not null" json:"affected_count"`
	Errors        datatypes.JSONSlice[string] `gorm:"type:json" json:"errors,omitempty"`
}

// TableName sets the database table name.
func (BulkOperation) TableName() string { return "bulk_operations" }
