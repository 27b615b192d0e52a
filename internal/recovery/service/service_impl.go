package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/notify"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/observability/metrics"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
)

const deliverTimeout = 10 * time.Second

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	repo      domain.Repository
	sink      notify.Sink
	clock     clock.Clock
	scheduler *Scheduler
	plan      []StagePlan
	metrics   *metrics.EngagementMetrics
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Sink  notify.Sink
	Clock clock.Clock
	Cfg   config.Config
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("recovery.service"),

		repo:      p.Repo,
		sink:      p.Sink,
		clock:     p.Clock,
		scheduler: NewScheduler(),
		plan: []StagePlan{
			{Stage: domain.StageInitial, After: p.Cfg.RecoveryInitialDelay},
			{Stage: domain.StageReminder, After: p.Cfg.RecoveryReminderDelay},
			{Stage: domain.StageFinal, After: p.Cfg.RecoveryFinalDelay},
		},
		metrics: metrics.EngagementWithConfig(metrics.Config{
			ServiceName: "cartd",
			Environment: p.Cfg.Environment,
		}),
	}
}

// Capture persists the abandoned cart and arms the three stage timers
// anchored at the capture timestamp.
func (s *Service) Capture(ctx context.Context, req domain.CaptureRequest) (*domain.AbandonmentRecord, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return nil, domain.ErrInvalidSession
	}

	existing, err := s.repo.FindBySession(ctx, s.db, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateSession
	}

	lines := cart.Clone(req.Lines)
	record := &domain.AbandonmentRecord{
		SessionID:     sessionID,
		CustomerID:    strings.TrimSpace(req.CustomerID),
		ContactHandle: strings.TrimSpace(req.ContactHandle),
		Lines:         lines,
		TotalValue:    cart.TotalValue(lines),
		AbandonedAt:   s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		return nil, err
	}

	s.scheduler.Schedule(sessionID, s.plan, func(stage domain.Stage) {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()
		s.deliverStage(ctx, sessionID, stage)
	})

	s.log.Info("abandonment captured",
		zap.String("session_id", sessionID),
		zap.Float64("total_value", record.TotalValue),
	)
	return record, nil
}

// deliverStage runs when a stage timer fires. It rechecks the recovered
// flag, sends through the sink, and logs the attempt. Failures are logged
// and dropped; the stage is not retried.
func (s *Service) deliverStage(ctx context.Context, sessionID string, stage domain.Stage) {
	record, err := s.repo.FindBySession(ctx, s.db, sessionID)
	if err != nil {
		s.log.Warn("recovery stage load failed",
			zap.String("session_id", sessionID), zap.String("stage", string(stage)), zap.Error(err))
		return
	}
	if record == nil || record.Recovered || record.ContactHandle == "" {
		return
	}

	payload := map[string]any{
		"session_id":  sessionID,
		"total_value": record.TotalValue,
		"line_count":  len(record.Lines),
	}
	if err := s.sink.Send(ctx, notify.ChannelEmail, record.ContactHandle, templateFor(stage), payload); err != nil {
		s.log.Warn("recovery notification send failed",
			zap.String("session_id", sessionID), zap.String("stage", string(stage)), zap.Error(err))
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindBySession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if current == nil || current.Recovered {
			return nil
		}
		now := s.clock.Now()
		current.Notifications = append(current.Notifications, domain.NotificationEntry{
			Stage:  stage,
			SentAt: now,
		})
		current.AttemptCount++
		current.LastAttemptAt = &now
		return s.repo.Update(ctx, tx, current)
	})
	if err != nil {
		s.log.Warn("recovery stage bookkeeping failed",
			zap.String("session_id", sessionID), zap.String("stage", string(stage)), zap.Error(err))
		return
	}
	s.metrics.RecoveryStageSent(string(stage))
}

func templateFor(stage domain.Stage) string {
	switch stage {
	case domain.StageReminder:
		return notify.TemplateRecoveryReminder
	case domain.StageFinal:
		return notify.TemplateRecoveryFinal
	default:
		return notify.TemplateRecoveryInitial
	}
}

// MarkRecovered flips the recovered flag and cancels the pending timer
// group. Already-sent notifications stay in the log.
func (s *Service) MarkRecovered(ctx context.Context, sessionID string) (*domain.AbandonmentRecord, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domain.ErrInvalidSession
	}

	var updated *domain.AbandonmentRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindBySession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		if !record.Recovered {
			now := s.clock.Now()
			record.Recovered = true
			record.RecoveredAt = &now
			if err := s.repo.Update(ctx, tx, record); err != nil {
				return err
			}
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.scheduler.Cancel(sessionID)
	return updated, nil
}

// TrackEngagement stamps an open or click on the latest sent entry for the
// stage.
func (s *Service) TrackEngagement(ctx context.Context, sessionID string, stage domain.Stage, kind string) error {
	if !stage.Valid() {
		return domain.ErrInvalidStage
	}
	if kind != domain.EngagementOpened && kind != domain.EngagementClicked {
		return domain.ErrInvalidEngagement
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindBySession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}

		now := s.clock.Now()
		for i := len(record.Notifications) - 1; i >= 0; i-- {
			entry := &record.Notifications[i]
			if entry.Stage != stage {
				continue
			}
			if kind == domain.EngagementOpened && entry.OpenedAt == nil {
				entry.OpenedAt = &now
			}
			if kind == domain.EngagementClicked && entry.ClickedAt == nil {
				entry.ClickedAt = &now
			}
			return s.repo.Update(ctx, tx, record)
		}
		return domain.ErrInvalidStage
	})
}

// Analytics scans the record set; nothing is maintained incrementally.
func (s *Service) Analytics(ctx context.Context, from, to *time.Time) (*domain.Analytics, error) {
	records, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := &domain.Analytics{StageBreakdown: make(map[domain.Stage]int64)}
	var totalValue float64
	for _, record := range records {
		if from != nil && record.AbandonedAt.Before(*from) {
			continue
		}
		if to != nil && record.AbandonedAt.After(*to) {
			continue
		}
		out.Abandoned++
		totalValue += record.TotalValue
		if record.Recovered {
			out.Recovered++
		}
		for _, entry := range record.Notifications {
			out.StageBreakdown[entry.Stage]++
		}
	}
	if out.Abandoned > 0 {
		out.RecoveryRate = float64(out.Recovered) / float64(out.Abandoned)
		out.AverageValue = totalValue / float64(out.Abandoned)
	}
	return out, nil
}

func (s *Service) GetBySession(ctx context.Context, sessionID string) (*domain.AbandonmentRecord, error) {
	record, err := s.repo.FindBySession(ctx, s.db, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// Shutdown stops all pending stage timers.
func (s *Service) Shutdown() {
	s.scheduler.StopAll()
}
