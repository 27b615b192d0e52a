package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/notify"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	repo  domain.Repository
	clock clock.Clock
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Clock clock.Clock
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("pricewatch.service"),

		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
	}
}

func channelFlags(channels []string) (email, push bool, err error) {
	if len(channels) == 0 {
		return true, false, nil
	}
	for _, raw := range channels {
		switch notify.Channel(strings.TrimSpace(strings.ToLower(raw))) {
		case notify.ChannelEmail:
			email = true
		case notify.ChannelPush:
			push = true
		default:
			return false, false, domain.ErrInvalidChannel
		}
	}
	return email, push, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.PriceWatch, error) {
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, domain.ErrInvalidCustomer
	}
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return nil, domain.ErrInvalidProduct
	}
	if req.TargetPrice <= 0 {
		return nil, domain.ErrInvalidTarget
	}
	if req.Cap < 0 {
		return nil, domain.ErrInvalidCap
	}

	email, push, err := channelFlags(req.Channels)
	if err != nil {
		return nil, err
	}

	notificationCap := req.Cap
	if notificationCap == 0 {
		notificationCap = domain.DefaultNotificationCap
	}

	watch := &domain.PriceWatch{
		ID:                s.genID.Generate(),
		CustomerID:        customerID,
		ProductID:         productID,
		TargetPrice:       req.TargetPrice,
		LastObservedPrice: req.CurrentPrice,
		Active:            true,
		CreatedAt:         s.clock.Now(),
		NotificationCap:   notificationCap,
		EmailEnabled:      email,
		PushEnabled:       push,
	}
	if err := s.repo.Insert(ctx, s.db, watch); err != nil {
		return nil, err
	}
	return watch, nil
}

func (s *Service) List(ctx context.Context, customerID string, activeOnly bool) ([]domain.PriceWatch, error) {
	customer := strings.TrimSpace(customerID)
	if customer == "" {
		return nil, domain.ErrInvalidCustomer
	}
	return s.repo.ListByCustomer(ctx, s.db, customer, activeOnly)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.PriceWatch, error) {
	id, err := domain.ParseID(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var updated *domain.PriceWatch
	err = s.db.Transaction(func(tx *gorm.DB) error {
		watch, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if watch == nil {
			return domain.ErrNotFound
		}

		if req.TargetPrice != nil {
			if *req.TargetPrice <= 0 {
				return domain.ErrInvalidTarget
			}
			watch.TargetPrice = *req.TargetPrice
		}
		if req.Cap != nil {
			if *req.Cap <= 0 {
				return domain.ErrInvalidCap
			}
			watch.NotificationCap = *req.Cap
		}
		if req.Channels != nil {
			email, push, err := channelFlags(req.Channels)
			if err != nil {
				return err
			}
			watch.EmailEnabled = email
			watch.PushEnabled = push
		}
		if req.Active != nil {
			// The cap is terminal: a capped watch cannot be switched back
			// on unless the same request raises the cap above the sent count.
			if *req.Active && watch.Capped() {
				return domain.ErrWatchCapped
			}
			watch.Active = *req.Active
		}
		if watch.Capped() {
			watch.Active = false
		}

		if err := s.repo.Update(ctx, tx, watch); err != nil {
			return err
		}
		updated = watch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	watchID, err := domain.ParseID(id)
	if err != nil {
		return false, domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, watchID)
}
