package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/notify"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/repository"
)

type recoveryFixture struct {
	svc      *Service
	recorder *notify.Recorder
}

func setupRecoveryFixture(t *testing.T, cfg config.Config) *recoveryFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.AbandonmentRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	recorder := notify.NewRecorder()
	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Repo:  repository.Provide(),
		Sink:  recorder,
		Clock: clock.SystemClock{},
		Cfg:   cfg,
	})
	t.Cleanup(svc.Shutdown)
	return &recoveryFixture{svc: svc, recorder: recorder}
}

// Stage delays long enough that nothing fires unless a test wants it to.
func quietConfig() config.Config {
	return config.Config{
		RecoveryInitialDelay:  time.Hour,
		RecoveryReminderDelay: 2 * time.Hour,
		RecoveryFinalDelay:    3 * time.Hour,
	}
}

func fastConfig() config.Config {
	return config.Config{
		RecoveryInitialDelay:  10 * time.Millisecond,
		RecoveryReminderDelay: 30 * time.Millisecond,
		RecoveryFinalDelay:    50 * time.Millisecond,
	}
}

func waitForSends(t *testing.T, recorder *notify.Recorder, want int) []notify.Sent {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if sent := recorder.All(); len(sent) >= want {
			return sent
		}
		time.Sleep(5 * time.Millisecond)
	}
	sent := recorder.All()
	t.Fatalf("timed out waiting for %d sends, got %d", want, len(sent))
	return sent
}

func TestCaptureComputesTotalAndRejectsDuplicates(t *testing.T) {
	f := setupRecoveryFixture(t, quietConfig())
	ctx := context.Background()

	record, err := f.svc.Capture(ctx, domain.CaptureRequest{
		SessionID:     "sess-1",
		CustomerID:    "cust-1",
		ContactHandle: "cust@example.com",
		Lines: []cart.Line{
			{ID: "l1", ProductID: "p1", UnitPrice: 20, Quantity: 2},
			{ID: "l2", ProductID: "p2", UnitPrice: 5.5, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if record.TotalValue != 45.5 {
		t.Fatalf("expected total 45.5, got %v", record.TotalValue)
	}

	_, err = f.svc.Capture(ctx, domain.CaptureRequest{SessionID: "sess-1"})
	if !errors.Is(err, domain.ErrDuplicateSession) {
		t.Fatalf("expected duplicate_session, got %v", err)
	}
}

func TestStagesFireInOrder(t *testing.T) {
	f := setupRecoveryFixture(t, fastConfig())
	ctx := context.Background()

	if _, err := f.svc.Capture(ctx, domain.CaptureRequest{
		SessionID:     "sess-1",
		ContactHandle: "cust@example.com",
		Lines:         []cart.Line{{ID: "l1", ProductID: "p1", UnitPrice: 10, Quantity: 1}},
	}); err != nil {
		t.Fatalf("capture: %v", err)
	}

	sent := waitForSends(t, f.recorder, 3)
	if sent[0].Template != notify.TemplateRecoveryInitial ||
		sent[1].Template != notify.TemplateRecoveryReminder ||
		sent[2].Template != notify.TemplateRecoveryFinal {
		t.Fatalf("unexpected stage order: %+v", sent)
	}
	if sent[0].Recipient != "cust@example.com" {
		t.Fatalf("unexpected recipient %q", sent[0].Recipient)
	}

	record, err := f.svc.GetBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.AttemptCount != 3 || len(record.Notifications) != 3 {
		t.Fatalf("expected 3 logged attempts, got %d/%d", record.AttemptCount, len(record.Notifications))
	}
}

func TestMarkRecoveredBeforeFirstStageSendsNothing(t *testing.T) {
	f := setupRecoveryFixture(t, config.Config{
		RecoveryInitialDelay:  50 * time.Millisecond,
		RecoveryReminderDelay: 80 * time.Millisecond,
		RecoveryFinalDelay:    110 * time.Millisecond,
	})
	ctx := context.Background()

	if _, err := f.svc.Capture(ctx, domain.CaptureRequest{
		SessionID:     "sess-1",
		ContactHandle: "cust@example.com",
	}); err != nil {
		t.Fatalf("capture: %v", err)
	}

	record, err := f.svc.MarkRecovered(ctx, "sess-1")
	if err != nil {
		t.Fatalf("mark recovered: %v", err)
	}
	if !record.Recovered || record.RecoveredAt == nil {
		t.Fatalf("expected recovered flags set")
	}

	time.Sleep(200 * time.Millisecond)
	if sent := f.recorder.All(); len(sent) != 0 {
		t.Fatalf("expected zero notifications after recovery, got %d", len(sent))
	}
}

func TestMarkRecoveredIsIdempotent(t *testing.T) {
	f := setupRecoveryFixture(t, quietConfig())
	ctx := context.Background()

	if _, err := f.svc.Capture(ctx, domain.CaptureRequest{SessionID: "sess-1"}); err != nil {
		t.Fatalf("capture: %v", err)
	}

	first, err := f.svc.MarkRecovered(ctx, "sess-1")
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}
	second, err := f.svc.MarkRecovered(ctx, "sess-1")
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if !second.RecoveredAt.Equal(*first.RecoveredAt) {
		t.Fatalf("expected recoveredAt unchanged on repeat")
	}

	_, err = f.svc.MarkRecovered(ctx, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestNoContactHandleSkipsSends(t *testing.T) {
	f := setupRecoveryFixture(t, fastConfig())
	ctx := context.Background()

	if _, err := f.svc.Capture(ctx, domain.CaptureRequest{SessionID: "sess-1"}); err != nil {
		t.Fatalf("capture: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	if sent := f.recorder.All(); len(sent) != 0 {
		t.Fatalf("expected no sends without a contact handle, got %d", len(sent))
	}
	record, err := f.svc.GetBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.AttemptCount != 0 {
		t.Fatalf("expected no attempts logged, got %d", record.AttemptCount)
	}
}

func TestTrackEngagement(t *testing.T) {
	f := setupRecoveryFixture(t, fastConfig())
	ctx := context.Background()

	if _, err := f.svc.Capture(ctx, domain.CaptureRequest{
		SessionID:     "sess-1",
		ContactHandle: "cust@example.com",
	}); err != nil {
		t.Fatalf("capture: %v", err)
	}
	waitForSends(t, f.recorder, 1)

	if err := f.svc.TrackEngagement(ctx, "sess-1", domain.StageInitial, domain.EngagementOpened); err != nil {
		t.Fatalf("track opened: %v", err)
	}
	if err := f.svc.TrackEngagement(ctx, "sess-1", domain.StageInitial, domain.EngagementClicked); err != nil {
		t.Fatalf("track clicked: %v", err)
	}

	record, err := f.svc.GetBySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var entry *domain.NotificationEntry
	for i := range record.Notifications {
		if record.Notifications[i].Stage == domain.StageInitial {
			entry = &record.Notifications[i]
		}
	}
	if entry == nil || entry.OpenedAt == nil || entry.ClickedAt == nil {
		t.Fatalf("expected initial entry stamped, got %+v", record.Notifications)
	}

	if err := f.svc.TrackEngagement(ctx, "sess-1", domain.StageFinal, domain.EngagementOpened); !errors.Is(err, domain.ErrInvalidStage) {
		t.Fatalf("expected invalid_stage for unsent stage, got %v", err)
	}
	if err := f.svc.TrackEngagement(ctx, "sess-1", domain.StageInitial, "stared"); !errors.Is(err, domain.ErrInvalidEngagement) {
		t.Fatalf("expected invalid_engagement, got %v", err)
	}
}

func TestAnalytics(t *testing.T) {
	f := setupRecoveryFixture(t, quietConfig())
	ctx := context.Background()

	for _, fixture := range []struct {
		session string
		value   float64
		recover bool
	}{
		{"sess-1", 100, true},
		{"sess-2", 50, false},
		{"sess-3", 30, false},
	} {
		if _, err := f.svc.Capture(ctx, domain.CaptureRequest{
			SessionID: fixture.session,
			Lines:     []cart.Line{{ID: "l1", ProductID: "p1", UnitPrice: fixture.value, Quantity: 1}},
		}); err != nil {
			t.Fatalf("capture %s: %v", fixture.session, err)
		}
		if fixture.recover {
			if _, err := f.svc.MarkRecovered(ctx, fixture.session); err != nil {
				t.Fatalf("recover %s: %v", fixture.session, err)
			}
		}
	}

	stats, err := f.svc.Analytics(ctx, nil, nil)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if stats.Abandoned != 3 || stats.Recovered != 1 {
		t.Fatalf("expected 3 abandoned / 1 recovered, got %d/%d", stats.Abandoned, stats.Recovered)
	}
	if stats.RecoveryRate < 0.33 || stats.RecoveryRate > 0.34 {
		t.Fatalf("expected recovery rate ~1/3, got %v", stats.RecoveryRate)
	}
	if stats.AverageValue != 60 {
		t.Fatalf("expected average value 60, got %v", stats.AverageValue)
	}

	// A window in the future excludes everything.
	from := time.Now().Add(time.Hour)
	empty, err := f.svc.Analytics(ctx, &from, nil)
	if err != nil {
		t.Fatalf("analytics windowed: %v", err)
	}
	if empty.Abandoned != 0 || empty.RecoveryRate != 0 {
		t.Fatalf("expected empty window, got %+v", empty)
	}
}
