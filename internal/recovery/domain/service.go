package domain

import (
	"context"
	"errors"
	"time"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
)

type CaptureRequest struct {
	SessionID     string      `json:"session_id"`
	CustomerID    string      `json:"customer_id"`
	ContactHandle string      `json:"contact_handle"`
	Lines         []cart.Line `json:"lines"`
}

// Engagement kinds accepted by TrackEngagement.
const (
	EngagementOpened  = "opened"
	EngagementClicked = "clicked"
)

// Analytics summarizes the abandonment record set over an optional range.
type Analytics struct {
	Abandoned      int64           `json:"abandoned"`
	Recovered      int64           `json:"recovered"`
	RecoveryRate   float64         `json:"recovery_rate"`
	AverageValue   float64         `json:"average_value"`
	StageBreakdown map[Stage]int64 `json:"stage_breakdown"`
}

type Service interface {
	Capture(ctx context.Context, req CaptureRequest) (*AbandonmentRecord, error)
	MarkRecovered(ctx context.Context, sessionID string) (*AbandonmentRecord, error)
	TrackEngagement(ctx context.Context, sessionID string, stage Stage, kind string) error
	Analytics(ctx context.Context, from, to *time.Time) (*Analytics, error)
	GetBySession(ctx context.Context, sessionID string) (*AbandonmentRecord, error)
}

var (
	ErrInvalidSession    = errors.New("invalid_session")
	ErrDuplicateSession  = errors.New("duplicate_session")
	ErrInvalidStage      = errors.New("invalid_stage")
	ErrInvalidEngagement = errors.New("invalid_engagement")
	ErrNotFound          = errors.New("not_found")
)
