package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID         *snowflake.Node
	repo          domain.Repository
	snapshotSvc   snapshotdomain.Service
	clock         clock.Clock
	discountCodes map[string]float64
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	SnapshotSvc snapshotdomain.Service
	Clock       clock.Clock
	Cfg         config.Config
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("bulk.service"),

		genID:         p.GenID,
		repo:          p.Repo,
		snapshotSvc:   p.SnapshotSvc,
		clock:         p.Clock,
		discountCodes: p.Cfg.DiscountCodes,
	}
}

// result accumulates a handler's best-effort outcome over the target set.
type result struct {
	affected int
	errs     []string
	lines    []cart.Line
}

// Execute dispatches to the handler for the request's kind and appends an
// immutable record of the outcome. Partial failure is reported through the
// record's error list, never as a returned error.
func (s *Service) Execute(ctx context.Context, req domain.ExecuteRequest) (*domain.Outcome, error) {
	kind := domain.Kind(strings.TrimSpace(req.Kind))
	if !kind.Valid() {
		return nil, domain.ErrInvalidOperation
	}
	executor := strings.TrimSpace(req.ExecutorID)
	if executor == "" {
		return nil, domain.ErrInvalidExecutor
	}
	if len(req.TargetIDs) == 0 {
		return nil, domain.ErrInvalidTargets
	}

	lines := cart.Clone(req.Lines)

	var res result
	var err error
	switch kind {
	case domain.KindQuantityUpdate:
		res, err = s.applyQuantity(req.TargetIDs, lines, req.NewQuantity)
	case domain.KindRemove:
		res = s.removeLines(req.TargetIDs, lines)
	case domain.KindMoveToSnapshot:
		res, err = s.moveToSnapshot(ctx, req.TargetIDs, lines, req.SnapshotID)
	case domain.KindApplyDiscount:
		res = s.applyDiscount(req.TargetIDs, lines, req.DiscountCode)
	case domain.KindVariantChange:
		res = s.changeVariant(req.TargetIDs, lines, req.Variant)
	}
	if err != nil {
		return nil, err
	}

	record := &domain.BulkOperation{
		ID:            s.genID.Generate(),
		Kind:          kind,
		TargetIDs:     req.TargetIDs,
		Payload:       payloadFor(kind, req),
		ExecutorID:    executor,
		ExecutedAt:    s.clock.Now(),
		Success:       len(res.errs) == 0,
		AffectedCount: res.affected,
		Errors:        res.errs,
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.log.Info("bulk operation executed",
		zap.String("kind", string(kind)),
		zap.Int("affected", res.affected),
		zap.Int("errors", len(res.errs)),
	)
	return &domain.Outcome{Record: record, Lines: res.lines}, nil
}

func payloadFor(kind domain.Kind, req domain.ExecuteRequest) datatypes.JSONMap {
	payload := datatypes.JSONMap{}
	switch kind {
	case domain.KindQuantityUpdate:
		payload["new_quantity"] = req.NewQuantity
	case domain.KindMoveToSnapshot:
		payload["snapshot_id"] = req.SnapshotID
	case domain.KindApplyDiscount:
		payload["discount_code"] = req.DiscountCode
	case domain.KindVariantChange:
		for k, v := range req.Variant {
			payload["variant."+k] = v
		}
	}
	return payload
}

func lineIndex(lines []cart.Line, id string) int {
	for i, line := range lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) applyQuantity(targets []string, lines []cart.Line, quantity int) (result, error) {
	if quantity <= 0 {
		return result{}, domain.ErrInvalidQuantity
	}
	res := result{lines: lines}
	for _, id := range targets {
		idx := lineIndex(res.lines, id)
		if idx < 0 {
			res.errs = append(res.errs, fmt.Sprintf("line %s not found", id))
			continue
		}
		res.lines[idx].Quantity = quantity
		res.affected++
	}
	return res, nil
}

func (s *Service) removeLines(targets []string, lines []cart.Line) result {
	res := result{lines: lines}
	for _, id := range targets {
		idx := lineIndex(res.lines, id)
		if idx < 0 {
			res.errs = append(res.errs, fmt.Sprintf("line %s not found", id))
			continue
		}
		res.lines = append(res.lines[:idx], res.lines[idx+1:]...)
		res.affected++
	}
	return res
}

func (s *Service) moveToSnapshot(ctx context.Context, targets []string, lines []cart.Line, snapshotID string) (result, error) {
	res := result{lines: lines}

	snapID, err := snapshotdomain.ParseID(snapshotID)
	if err != nil {
		res.errs = append(res.errs, fmt.Sprintf("snapshot %s not found", snapshotID))
		return res, nil
	}

	var moved []cart.Line
	var missing []string
	for _, id := range targets {
		idx := lineIndex(res.lines, id)
		if idx < 0 {
			missing = append(missing, fmt.Sprintf("line %s not found", id))
			continue
		}
		moved = append(moved, res.lines[idx])
		res.lines = append(res.lines[:idx], res.lines[idx+1:]...)
	}

	if len(moved) > 0 {
		if err := s.snapshotSvc.AppendLines(ctx, snapID, moved); err != nil {
			if errors.Is(err, snapshotdomain.ErrNotFound) {
				return result{lines: lines, errs: []string{fmt.Sprintf("snapshot %s not found", snapshotID)}}, nil
			}
			return result{}, err
		}
		res.affected = len(moved)
	}
	res.errs = append(res.errs, missing...)
	return res, nil
}

func (s *Service) applyDiscount(targets []string, lines []cart.Line, code string) result {
	res := result{lines: lines}
	pct, ok := s.discountCodes[strings.TrimSpace(code)]
	if !ok {
		res.errs = append(res.errs, fmt.Sprintf("invalid discount code: %s", code))
		return res
	}
	for _, id := range targets {
		idx := lineIndex(res.lines, id)
		if idx < 0 {
			res.errs = append(res.errs, fmt.Sprintf("line %s not found", id))
			continue
		}
		line := &res.lines[idx]
		if line.OriginalPrice == nil {
			original := line.UnitPrice
			line.OriginalPrice = &original
		}
		line.UnitPrice = math.Round(line.UnitPrice*(100-pct)) / 100
		res.affected++
	}
	return res
}

func (s *Service) changeVariant(targets []string, lines []cart.Line, variant map[string]string) result {
	res := result{lines: lines}
	for _, id := range targets {
		idx := lineIndex(res.lines, id)
		if idx < 0 {
			res.errs = append(res.errs, fmt.Sprintf("line %s not found", id))
			continue
		}
		line := &res.lines[idx]
		if line.Variant == nil {
			line.Variant = make(map[string]string, len(variant))
		}
		for k, v := range variant {
			line.Variant[k] = v
		}
		res.affected++
	}
	return res
}

func (s *Service) History(ctx context.Context, limit int) ([]domain.BulkOperation, error) {
	return s.repo.List(ctx, s.db, limit)
}
