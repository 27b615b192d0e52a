package domain

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
)

// Stage labels one slot in the fixed recovery sequence.
type Stage string

const (
	StageInitial  Stage = "initial"
	StageReminder Stage = "reminder"
	StageFinal    Stage = "final"
)

// Stages lists the sequence in firing order.
func Stages() []Stage {
	return []Stage{StageInitial, StageReminder, StageFinal}
}

// Valid reports whether the stage is one of the recognized labels.
func (s Stage) Valid() bool {
	switch s {
	case StageInitial, StageReminder, StageFinal:
		return true
	}
	return false
}

// NotificationEntry is one sent recovery notification in the record's log.
type NotificationEntry struct {
	Stage     Stage      `json:"stage"`
	SentAt    time.Time  `json:"sent_at"`
	OpenedAt  *time.Time `json:"opened_at,omitempty"`
	ClickedAt *time.Time `json:"clicked_at,omitempty"`
}

// AbandonmentRecord captures a cart at the moment of abandonment. Once
// Recovered flips true no further stage fires, and the record is only
// touched again to stamp engagement on already-sent entries.
type AbandonmentRecord struct {
	SessionID     string                                 `gorm:"primaryKey;type:text" json:"session_id"`
	CustomerID    string                                 `gorm:"type:text;index" json:"customer_id,omitempty"`
	ContactHandle string                                 `gorm:"type:text" json:"contact_handle,omitempty"`
	Lines         datatypes.JSONSlice[cart.Line]         `gorm:"type:json" json:"lines"`
	TotalValue    float64                                `gorm:"not null" json:"total_value"`
	AbandonedAt   time.Time                              `gorm:"not null" json:"abandoned_at"`
	AttemptCount  int                                    `gorm:"not null;default:0" json:"attempt_count"`
	LastAttemptAt *time.Time                             `json:"last_attempt_at,omitempty"`
	Recovered     bool                                   `gorm:"not null;default:false" json:"recovered"`
	RecoveredAt   *time.Time                             `json:"recovered_at,omitempty"`
	Notifications datatypes.JSONSlice[NotificationEntry] `gorm:"type:json" json:"notifications,omitempty"`
}

// TableName sets the database table name.
func (AbandonmentRecord) TableName() string { return "abandonment_records" }
