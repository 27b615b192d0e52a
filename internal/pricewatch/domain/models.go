package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PriceWatch tracks one product against a customer's target price. Once
// the notification counter reaches the cap the watch deactivates for good;
// resuming requires a new watch.
type PriceWatch struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID        string       `gorm:"type:text;not null;index" json:"customer_id"`
	ProductID         string       `gorm:"type:text;not null;index" json:"product_id"`
	TargetPrice       float64      `gorm:"not null" json:"target_price"`
	LastObservedPrice float64      `gorm:"not null" json:"last_observed_price"`
	Active            bool         `gorm:"not null;default:true" json:"active"`
	CreatedAt         time.Time    `gorm:"not null" json:"created_at"`
	FiredAt           *time.Time   `json:"fired_at,omitempty"`
	NotificationsSent int          `gorm:"not null;default:0" json:"notifications_sent"`
	NotificationCap   int          `gorm:"not null;default:3" json:"notification_cap"`
	EmailEnabled      bool         `gorm:"not null" json:"email_enabled"`
	PushEnabled       bool         `gorm:"not null;default:false" json:"push_enabled"`
}

// TableName sets the database table name.
func (PriceWatch) TableName() string { return "price_watches" }

// Capped reports whether the watch reached its notification cap.
func (w PriceWatch) Capped() bool {
	return w.NotificationsSent >= w.NotificationCap
}
