package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
)

// ExecuteRequest carries the caller's live cart lines together with the
// operation to apply. The executor does not own the live cart; it reports
// an outcome over the lines it was given.
type ExecuteRequest struct {
	Kind       string      `json:"kind"`
	TargetIDs  []string    `json:"target_ids"`
	ExecutorID string      `json:"executor_id"`
	Lines      []cart.Line `json:"lines"`

	NewQuantity  int               `json:"new_quantity,omitempty"`
	SnapshotID   string            `json:"snapshot_id,omitempty"`
	DiscountCode string            `json:"discount_code,omitempty"`
	Variant      map[string]string `json:"variant,omitempty"`
}

// Outcome reports a best-effort bulk execution. Partial failure lives in
// Errors; it is a terminal state, not an exception.
type Outcome struct {
	Record *BulkOperation `json:"record"`
	Lines  []cart.Line    `json:"lines"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, op *BulkOperation) error
	List(ctx context.Context, db *gorm.DB, limit int) ([]BulkOperation, error)
}

type Service interface {
	Execute(ctx context.Context, req ExecuteRequest) (*Outcome, error)
	History(ctx context.Context, limit int) ([]BulkOperation, error)
}

var (
	ErrInvalidOperation = errors.New("invalid_operation")
	ErrInvalidExecutor  = errors.New("invalid_executor")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidTargets   = errors.New("invalid_targets")
)
