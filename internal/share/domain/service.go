package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"

	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

type IssueRequest struct {
	SnapshotID     string   `json:"snapshot_id"`
	IssuerID       string   `json:"issuer_id"`
	AccessLevel    string   `json:"access_level"`
	ExpiresInHours int      `json:"expires_in_hours"`
	Password       string   `json:"password"`
	AllowAnonymous *bool    `json:"allow_anonymous"`
	CustomMessage  string   `json:"custom_message"`
	Recipients     []string `json:"recipients"`
}

type ResolveRequest struct {
	Token    string
	Password string
	CallerID string
}

// Resolution pairs a grant with the snapshot it exposes.
type Resolution struct {
	Grant    *ShareGrant
	Snapshot *snapshotdomain.CartSnapshot
}

type Service interface {
	Issue(ctx context.Context, req IssueRequest) (*ShareGrant, error)
	Resolve(ctx context.Context, req ResolveRequest) (*Resolution, error)
	Revoke(ctx context.Context, grantID string) (bool, error)
	ListByIssuer(ctx context.Context, issuerID string) ([]ShareGrant, error)
}

func ParseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

var (
	ErrInvalidSnapshot    = errors.New("invalid_snapshot")
	ErrInvalidIssuer      = errors.New("invalid_issuer")
	ErrInvalidAccessLevel = errors.New("invalid_access_level")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
	ErrPasswordMismatch   = errors.New("password_mismatch")
	ErrForbidden          = errors.New("forbidden")
)
