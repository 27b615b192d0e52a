package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/repository"
)

type watchFixture struct {
	svc domain.Service
	db  *gorm.DB
}

func setupWatchFixture(t *testing.T) *watchFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.PriceWatch{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Clock: clock.SystemClock{},
	})
	return &watchFixture{svc: svc, db: db}
}

func (f *watchFixture) reload(t *testing.T, id snowflake.ID) domain.PriceWatch {
	t.Helper()
	var watch domain.PriceWatch
	if err := f.db.First(&watch, "id = ?", id).Error; err != nil {
		t.Fatalf("reload watch: %v", err)
	}
	return watch
}

func TestCreatePushOnlyDisablesEmail(t *testing.T) {
	f := setupWatchFixture(t)
	ctx := context.Background()

	watch, err := f.svc.Create(ctx, domain.CreateRequest{
		CustomerID:  "cust-1",
		ProductID:   "p1",
		TargetPrice: 50,
		Channels:    []string{"push"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The stored row must match the request, not a column default.
	stored := f.reload(t, watch.ID)
	if stored.EmailEnabled {
		t.Fatalf("expected email disabled on a push-only watch")
	}
	if !stored.PushEnabled {
		t.Fatalf("expected push enabled on a push-only watch")
	}
}

func TestCreateDefaultsToEmailChannel(t *testing.T) {
	f := setupWatchFixture(t)
	ctx := context.Background()

	watch, err := f.svc.Create(ctx, domain.CreateRequest{
		CustomerID:  "cust-1",
		ProductID:   "p1",
		TargetPrice: 50,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stored := f.reload(t, watch.ID)
	if !stored.EmailEnabled || stored.PushEnabled {
		t.Fatalf("expected email-only defaults, got email=%v push=%v", stored.EmailEnabled, stored.PushEnabled)
	}
	if stored.NotificationCap != domain.DefaultNotificationCap {
		t.Fatalf("expected default cap %d, got %d", domain.DefaultNotificationCap, stored.NotificationCap)
	}
}

func TestUpdateRejectsReactivatingCappedWatch(t *testing.T) {
	f := setupWatchFixture(t)
	ctx := context.Background()

	watch, err := f.svc.Create(ctx, domain.CreateRequest{
		CustomerID:  "cust-1",
		ProductID:   "p1",
		TargetPrice: 50,
		Cap:         1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.db.Model(&domain.PriceWatch{}).Where("id = ?", watch.ID).
		Updates(map[string]any{"notifications_sent": 1, "active": false}).Error; err != nil {
		t.Fatalf("cap watch: %v", err)
	}

	active := true
	_, err = f.svc.Update(ctx, domain.UpdateRequest{ID: watch.ID.String(), Active: &active})
	if !errors.Is(err, domain.ErrWatchCapped) {
		t.Fatalf("expected watch_capped, got %v", err)
	}
	if f.reload(t, watch.ID).Active {
		t.Fatalf("expected capped watch to stay inactive")
	}

	// Raising the cap in the same request lifts the restriction.
	newCap := 5
	updated, err := f.svc.Update(ctx, domain.UpdateRequest{ID: watch.ID.String(), Active: &active, Cap: &newCap})
	if err != nil {
		t.Fatalf("update with raised cap: %v", err)
	}
	if !updated.Active || updated.NotificationCap != 5 {
		t.Fatalf("expected active watch with cap 5, got active=%v cap=%d", updated.Active, updated.NotificationCap)
	}
}

func TestUpdateCapBelowSentCountDeactivates(t *testing.T) {
	f := setupWatchFixture(t)
	ctx := context.Background()

	watch, err := f.svc.Create(ctx, domain.CreateRequest{
		CustomerID:  "cust-1",
		ProductID:   "p1",
		TargetPrice: 50,
		Cap:         5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.db.Model(&domain.PriceWatch{}).Where("id = ?", watch.ID).
		Update("notifications_sent", 2).Error; err != nil {
		t.Fatalf("record sends: %v", err)
	}

	newCap := 2
	updated, err := f.svc.Update(ctx, domain.UpdateRequest{ID: watch.ID.String(), Cap: &newCap})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Active {
		t.Fatalf("expected watch to deactivate when the cap drops to the sent count")
	}
}
