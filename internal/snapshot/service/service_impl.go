package service

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID       *snowflake.Node
	repo        domain.Repository
	clock       clock.Clock
	requireName bool
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Clock clock.Clock
	Cfg   config.Config
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("snapshot.service"),

		genID:       p.GenID,
		repo:        p.Repo,
		clock:       p.Clock,
		requireName: p.Cfg.SnapshotRequireName,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CartSnapshot, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, domain.ErrInvalidCustomer
	}
	name := strings.TrimSpace(req.Name)
	if name == "" && s.requireName {
		return nil, domain.ErrInvalidName
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidLine
		}
	}

	now := s.clock.Now()
	snap := &domain.CartSnapshot{
		ID:             s.genID.Generate(),
		CustomerID:     customerID,
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Lines:          cart.Clone(req.Lines),
		IsPublic:       req.IsPublic,
		Tags:           req.Tags,
		Occasion:       strings.TrimSpace(req.Occasion),
		CreatedAt:      now,
		UpdatedAt:      now,
		LastAccessedAt: now,
	}
	snap.DeriveTotals()

	if err := s.repo.Insert(ctx, s.db, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.CartSnapshot, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, domain.ErrInvalidCustomer
	}

	snaps, err := s.repo.ListByCustomer(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}

	filtered := snaps[:0:0]
	for _, snap := range snaps {
		if !matchesFilter(snap, req) {
			continue
		}
		filtered = append(filtered, snap)
	}

	sortSnapshots(filtered, req.SortBy, req.Order)

	if req.Limit > 0 && len(filtered) > req.Limit {
		filtered = filtered[:req.Limit]
	}
	return filtered, nil
}

func matchesFilter(snap domain.CartSnapshot, req domain.ListRequest) bool {
	if req.Occasion != "" && snap.Occasion != req.Occasion {
		return false
	}
	if req.IsPublic != nil && snap.IsPublic != *req.IsPublic {
		return false
	}
	for _, want := range req.Tags {
		found := false
		for _, tag := range snap.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortSnapshots(snaps []domain.CartSnapshot, sortBy, order string) {
	desc := strings.EqualFold(order, "desc")
	var less func(a, b domain.CartSnapshot) bool
	switch sortBy {
	case domain.SortByName:
		less = func(a, b domain.CartSnapshot) bool { return a.Name < b.Name }
	case domain.SortByCreated:
		less = func(a, b domain.CartSnapshot) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case domain.SortByValue:
		less = func(a, b domain.CartSnapshot) bool { return a.TotalValue < b.TotalValue }
	case domain.SortByUpdated:
		less = func(a, b domain.CartSnapshot) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		// Most recently updated first.
		less = func(a, b domain.CartSnapshot) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
		desc = order == "" || desc
	}
	sort.SliceStable(snaps, func(i, j int) bool {
		if desc {
			return less(snaps[j], snaps[i])
		}
		return less(snaps[i], snaps[j])
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.CartSnapshot, error) {
	snapID, err := domain.ParseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	snap, err := s.repo.FindByID(ctx, s.db, snapID)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.CartSnapshot, error) {
	snapID, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var updated *domain.CartSnapshot
	err = s.db.Transaction(func(tx *gorm.DB) error {
		snap, err := s.repo.FindByID(ctx, tx, snapID)
		if err != nil {
			return err
		}
		if snap == nil {
			return domain.ErrNotFound
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" && s.requireName {
				return domain.ErrInvalidName
			}
			snap.Name = name
		}
		if req.Description != nil {
			snap.Description = strings.TrimSpace(*req.Description)
		}
		if req.Tags != nil {
			snap.Tags = *req.Tags
		}
		if req.Occasion != nil {
			snap.Occasion = strings.TrimSpace(*req.Occasion)
		}
		if req.IsPublic != nil {
			snap.IsPublic = *req.IsPublic
		}
		if req.Lines != nil {
			for _, line := range *req.Lines {
				if line.Quantity <= 0 {
					return domain.ErrInvalidLine
				}
			}
			snap.Lines = cart.Clone(*req.Lines)
			snap.DeriveTotals()
		}

		now := s.clock.Now()
		snap.UpdatedAt = now
		snap.LastAccessedAt = now

		if err := s.repo.Update(ctx, tx, snap); err != nil {
			return err
		}
		updated = snap
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	snapID, err := domain.ParseID(id)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, snapID)
}

// Touch bumps the last-access timestamp, e.g. when a share grant resolves.
func (s *Service) Touch(ctx context.Context, id snowflake.ID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		snap, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if snap == nil {
			return domain.ErrNotFound
		}
		snap.LastAccessedAt = s.clock.Now()
		return s.repo.Update(ctx, tx, snap)
	})
}

// AppendLines adds line copies to an existing snapshot, re-deriving totals
// in the same transaction.
func (s *Service) AppendLines(ctx context.Context, id snowflake.ID, lines []cart.Line) error {
	if len(lines) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		snap, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if snap == nil {
			return domain.ErrNotFound
		}
		snap.Lines = append(snap.Lines, cart.Clone(lines)...)
		snap.DeriveTotals()
		now := s.clock.Now()
		snap.UpdatedAt = now
		snap.LastAccessedAt = now
		return s.repo.Update(ctx, tx, snap)
	})
}
