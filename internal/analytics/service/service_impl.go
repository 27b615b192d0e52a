package service

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/analytics/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	recoverydomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

// activeWindow is how recently a snapshot must have been accessed to count
// as active.
const activeWindow = 7 * 24 * time.Hour

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	snapshotRepo snapshotdomain.Repository
	recoverySvc  recoverydomain.Service
	clock        clock.Clock
}

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	SnapshotRepo snapshotdomain.Repository
	RecoverySvc  recoverydomain.Service
	Clock        clock.Clock
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("analytics.service"),

		snapshotRepo: p.SnapshotRepo,
		recoverySvc:  p.RecoverySvc,
		clock:        p.Clock,
	}
}

func (s *Service) Overview(ctx context.Context) (*domain.Overview, error) {
	snaps, err := s.snapshotRepo.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := &domain.Overview{}
	cutoff := s.clock.Now().Add(-activeWindow)
	var totalValue float64
	var totalLines int
	for _, snap := range snaps {
		out.TotalSnapshots++
		if snap.LastAccessedAt.After(cutoff) {
			out.ActiveSnapshots++
		}
		totalValue += snap.TotalValue
		totalLines += len(snap.Lines)
	}
	if out.TotalSnapshots > 0 {
		out.MeanSnapshotValue = totalValue / float64(out.TotalSnapshots)
		out.MeanLineCount = float64(totalLines) / float64(out.TotalSnapshots)
	}

	recovery, err := s.recoverySvc.Analytics(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	out.Abandoned = recovery.Abandoned
	out.Recovered = recovery.Recovered
	out.RecoveryRate = recovery.RecoveryRate

	return out, nil
}
