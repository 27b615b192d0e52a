package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	analyticsdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/analytics/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/notify"
	recoverydomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
	recoveryrepo "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/repository"
	recoverysvc "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/service"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
	snapshotrepo "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/repository"
	snapshotsvc "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/service"
)

type analyticsFixture struct {
	overview analyticsdomain.Service
	snapshot snapshotdomain.Service
	recovery *recoverysvc.Service
	clock    *clock.Fixed
}

func setupAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&snapshotdomain.CartSnapshot{}, &recoverydomain.AbandonmentRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	fixed := &clock.Fixed{At: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	snapSvc := snapshotsvc.NewService(snapshotsvc.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  snapshotrepo.Provide(),
		Clock: fixed,
		Cfg:   config.Config{},
	})
	recSvc := recoverysvc.NewService(recoverysvc.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Repo:  recoveryrepo.Provide(),
		Sink:  notify.NewRecorder(),
		Clock: fixed,
		Cfg: config.Config{
			RecoveryInitialDelay:  time.Hour,
			RecoveryReminderDelay: 2 * time.Hour,
			RecoveryFinalDelay:    3 * time.Hour,
		},
	})
	t.Cleanup(recSvc.Shutdown)

	overview := NewService(ServiceParam{
		DB:           db,
		Log:          zap.NewNop(),
		SnapshotRepo: snapshotrepo.Provide(),
		RecoverySvc:  recSvc,
		Clock:        fixed,
	})
	return &analyticsFixture{overview: overview, snapshot: snapSvc, recovery: recSvc, clock: fixed}
}

func TestOverviewEmpty(t *testing.T) {
	f := setupAnalyticsFixture(t)

	out, err := f.overview.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if out.TotalSnapshots != 0 || out.MeanSnapshotValue != 0 || out.RecoveryRate != 0 {
		t.Fatalf("expected zero overview, got %+v", out)
	}
}

func TestOverviewAggregates(t *testing.T) {
	f := setupAnalyticsFixture(t)
	ctx := context.Background()

	for _, price := range []float64{100, 50} {
		if _, err := f.snapshot.Create(ctx, snapshotdomain.CreateRequest{
			CustomerID: "cust-1",
			Name:       "cart",
			Lines:      []cart.Line{{ID: "l1", ProductID: "p1", UnitPrice: price, Quantity: 1}},
		}); err != nil {
			t.Fatalf("create snapshot: %v", err)
		}
	}

	if _, err := f.recovery.Capture(ctx, recoverydomain.CaptureRequest{
		SessionID: "sess-1",
		Lines:     []cart.Line{{ID: "l1", ProductID: "p1", UnitPrice: 40, Quantity: 1}},
	}); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if _, err := f.recovery.Capture(ctx, recoverydomain.CaptureRequest{SessionID: "sess-2"}); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if _, err := f.recovery.MarkRecovered(ctx, "sess-1"); err != nil {
		t.Fatalf("recover: %v", err)
	}

	out, err := f.overview.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if out.TotalSnapshots != 2 || out.ActiveSnapshots != 2 {
		t.Fatalf("expected 2 total / 2 active snapshots, got %d/%d", out.TotalSnapshots, out.ActiveSnapshots)
	}
	if out.MeanSnapshotValue != 75 {
		t.Fatalf("expected mean value 75, got %v", out.MeanSnapshotValue)
	}
	if out.MeanLineCount != 1 {
		t.Fatalf("expected mean line count 1, got %v", out.MeanLineCount)
	}
	if out.Abandoned != 2 || out.Recovered != 1 || out.RecoveryRate != 0.5 {
		t.Fatalf("expected recovery 2/1/0.5, got %d/%d/%v", out.Abandoned, out.Recovered, out.RecoveryRate)
	}
}

func TestOverviewActiveWindow(t *testing.T) {
	f := setupAnalyticsFixture(t)
	ctx := context.Background()

	if _, err := f.snapshot.Create(ctx, snapshotdomain.CreateRequest{
		CustomerID: "cust-1",
		Name:       "stale",
	}); err != nil {
		t.Fatalf("create snapshot: %v", err)
	}

	// Ten days later the untouched snapshot no longer counts as active.
	f.clock.At = f.clock.At.Add(10 * 24 * time.Hour)

	out, err := f.overview.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if out.TotalSnapshots != 1 || out.ActiveSnapshots != 0 {
		t.Fatalf("expected 1 total / 0 active, got %d/%d", out.TotalSnapshots, out.ActiveSnapshots)
	}
}
