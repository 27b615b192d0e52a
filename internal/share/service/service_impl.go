package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/domain"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

const tokenBytes = 32

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID       *snowflake.Node
	repo        domain.Repository
	snapshotSvc snapshotdomain.Service
	clock       clock.Clock
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	SnapshotSvc snapshotdomain.Service
	Clock       clock.Clock
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("share.service"),

		genID:       p.GenID,
		repo:        p.Repo,
		snapshotSvc: p.SnapshotSvc,
		clock:       p.Clock,
	}
}

func newToken() (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Issue mints a grant for a snapshot id. Existence of the snapshot is not
// checked here; resolution performs the lookup so a grant can outlive or
// predate its snapshot.
func (s *Service) Issue(ctx context.Context, req domain.IssueRequest) (*domain.ShareGrant, error) {
	snapshotID, err := domain.ParseID(req.SnapshotID)
	if err != nil {
		return nil, domain.ErrInvalidSnapshot
	}
	issuerID := strings.TrimSpace(req.IssuerID)
	if issuerID == "" {
		return nil, domain.ErrInvalidIssuer
	}

	level := domain.AccessLevelView
	if raw := strings.TrimSpace(req.AccessLevel); raw != "" {
		level = domain.AccessLevel(raw)
		if !level.Valid() {
			return nil, domain.ErrInvalidAccessLevel
		}
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	grant := &domain.ShareGrant{
		ID:             s.genID.Generate(),
		Token:          token,
		SnapshotID:     snapshotID,
		IssuerID:       issuerID,
		AccessLevel:    level,
		Recipients:     req.Recipients,
		AllowAnonymous: true,
		CustomMessage:  strings.TrimSpace(req.CustomMessage),
		CreatedAt:      now,
	}
	if req.AllowAnonymous != nil {
		grant.AllowAnonymous = *req.AllowAnonymous
	}
	if req.ExpiresInHours > 0 {
		expires := now.Add(time.Duration(req.ExpiresInHours) * time.Hour)
		grant.ExpiresAt = &expires
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		grant.PasswordHash = hash
	}

	if err := s.repo.Insert(ctx, s.db, grant); err != nil {
		return nil, err
	}
	s.log.Info("share grant issued",
		zap.String("grant_id", grant.ID.String()),
		zap.String("snapshot_id", snapshotID.String()),
		zap.String("access_level", string(level)),
	)
	return grant, nil
}

// Resolve checks existence, expiry, password and audience in that order,
// then loads the snapshot and records the access.
func (s *Service) Resolve(ctx context.Context, req domain.ResolveRequest) (*domain.Resolution, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, domain.ErrNotFound
	}

	grant, err := s.repo.FindByToken(ctx, s.db, token)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, domain.ErrNotFound
	}

	now := s.clock.Now()
	if grant.Expired(now) {
		return nil, domain.ErrNotFound
	}

	if grant.PasswordHash != "" && !verifyPassword(req.Password, grant.PasswordHash) {
		return nil, domain.ErrPasswordMismatch
	}

	if !grant.AllowAnonymous {
		caller := strings.TrimSpace(req.CallerID)
		if caller == "" || !containsFold(grant.Recipients, caller) {
			return nil, domain.ErrForbidden
		}
	}

	snap, err := s.snapshotSvc.GetByID(ctx, grant.SnapshotID.String())
	if err != nil {
		if errors.Is(err, snapshotdomain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// Re-read inside the transaction so concurrent resolves never lose an
	// access increment.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByToken(ctx, tx, token)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		current.AccessCount++
		current.LastAccessedAt = &now
		if err := s.repo.Update(ctx, tx, current); err != nil {
			return err
		}
		grant = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.snapshotSvc.Touch(ctx, grant.SnapshotID); err != nil {
		s.log.Warn("failed to touch snapshot on resolve",
			zap.String("snapshot_id", grant.SnapshotID.String()), zap.Error(err))
	}

	return &domain.Resolution{Grant: grant, Snapshot: snap}, nil
}

func containsFold(haystack []string, needle string) bool {
	for _, item := range haystack {
		if strings.EqualFold(strings.TrimSpace(item), needle) {
			return true
		}
	}
	return false
}

// Revoke deletes the grant. Revoking an already-revoked grant returns false
// rather than an error.
func (s *Service) Revoke(ctx context.Context, grantID string) (bool, error) {
	id, err := domain.ParseID(grantID)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) ListByIssuer(ctx context.Context, issuerID string) ([]domain.ShareGrant, error) {
	issuer := strings.TrimSpace(issuerID)
	if issuer == "" {
		return nil, domain.ErrInvalidIssuer
	}
	return s.repo.ListByIssuer(ctx, s.db, issuer)
}
