package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AccessLevel bounds what a grant holder may do with the shared snapshot.
type AccessLevel string

const (
	AccessLevelView  AccessLevel = "view"
	AccessLevelEdit  AccessLevel = "edit"
	AccessLevelAdmin AccessLevel = "admin"
)

// Valid reports whether the level is one of the recognized values.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessLevelView, AccessLevelEdit, AccessLevelAdmin:
		return true
	}
	return false
}

// ShareGrant is a capability token exposing one cart snapshot. A grant past
// its expiry is treated as nonexistent by every check but stays on disk
// until revoked.
type ShareGrant struct {
	ID             snowflake.ID                `gorm:"primaryKey" json:"id"`
	Token          string                      `gorm:"type:text;not null;uniqueIndex" json:"token"`
	SnapshotID     snowflake.ID                `gorm:"not null;index" json:"snapshot_id"`
	IssuerID       string                      `gorm:"type:text;not null;index" json:"issuer_id"`
	AccessLevel    AccessLevel                 `gorm:"type:text;not null;default:'view'" json:"access_level"`
	Recipients     datatypes.JSONSlice[string] `gorm:"type:json" json:"recipients,omitempty"`
	ExpiresAt      *time.Time                  `json:"expires_at,omitempty"`
	PasswordHash   string                      `gorm:"type:text" json:"-"`
	AllowAnonymous bool                        `gorm:"not null" json:"allow_anonymous"`
	AccessCount    int64                       `gorm:"not null;default:0" json:"access_count"`
	LastAccessedAt *time.Time                  `json:"last_accessed_at,omitempty"`
	CustomMessage  string                      `gorm:"type:text" json:"custom_message,omitempty"`
	CreatedAt      time.Time                   `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (ShareGrant) TableName() string { return "share_grants" }

// Expired reports whether the grant is past its expiry at the given time.
func (g ShareGrant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && now.After(*g.ExpiresAt)
}
