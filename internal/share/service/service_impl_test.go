package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/repository"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
	snapshotrepo "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/repository"
	snapshotsvc "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/service"
)

type shareFixture struct {
	share    domain.Service
	snapshot snapshotdomain.Service
	clock    *clock.Fixed
	db       *gorm.DB
}

func setupShareFixture(t *testing.T) *shareFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&snapshotdomain.CartSnapshot{}, &domain.ShareGrant{}); err != nil {
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
	shareSvc := NewService(ServiceParam{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		SnapshotSvc: snapSvc,
		Clock:       fixed,
	})
	return &shareFixture{share: shareSvc, snapshot: snapSvc, clock: fixed, db: db}
}

func (f *shareFixture) seedSnapshot(t *testing.T) *snapshotdomain.CartSnapshot {
	t.Helper()
	snap, err := f.snapshot.Create(context.Background(), snapshotdomain.CreateRequest{
		CustomerID: "cust-1",
		Name:       "Shared Cart",
		Lines:      []cart.Line{{ID: "l1", ProductID: "p1", UnitPrice: 25, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
	return snap
}

func TestIssueAndResolve(t *testing.T) {
	f := setupShareFixture(t)
	ctx := context.Background()
	snap := f.seedSnapshot(t)

	grant, err := f.share.Issue(ctx, domain.IssueRequest{
		SnapshotID: snap.ID.String(),
		IssuerID:   "cust-1",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if grant.Token == "" {
		t.Fatalf("expected non-empty token")
	}
	if grant.AccessLevel != domain.AccessLevelView {
		t.Fatalf("expected default view level, got %s", grant.AccessLevel)
	}

	res, err := f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Snapshot == nil || res.Snapshot.ID != snap.ID {
		t.Fatalf("expected resolution to carry the snapshot")
	}
	if res.Grant.AccessCount != 1 {
		t.Fatalf("expected access count 1, got %d", res.Grant.AccessCount)
	}

	res, err = f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if res.Grant.AccessCount != 2 {
		t.Fatalf("expected access count 2, got %d", res.Grant.AccessCount)
	}
}

func TestResolveExpiredReportsNotFound(t *testing.T) {
	f := setupShareFixture(t)
	ctx := context.Background()
	snap := f.seedSnapshot(t)

	grant, err := f.share.Issue(ctx, domain.IssueRequest{
		SnapshotID:     snap.ID.String(),
		IssuerID:       "cust-1",
		ExpiresInHours: 1,
		Password:       "hunter2",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	f.clock.At = f.clock.At.Add(2 * time.Hour)

	// A correct password must not rescue an expired grant.
	_, err = f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token, Password: "hunter2"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found for expired grant, got %v", err)
	}
}

func TestResolvePasswordMismatch(t *testing.T) {
	f := setupShareFixture(t)
	ctx := context.Background()
	snap := f.seedSnapshot(t)

	grant, err := f.share.Issue(ctx, domain.IssueRequest{
		SnapshotID: snap.ID.String(),
		IssuerID:   "cust-1",
		Password:   "hunter2",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token, Password: "wrong"})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected password_mismatch, got %v", err)
	}

	if _, err := f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token, Password: "hunter2"}); err != nil {
		t.Fatalf("resolve with correct password: %v", err)
	}
}

func TestResolveAudienceRestriction(t *testing.T) {
	f := setupShareFixture(t)
	ctx := context.Background()
	snap := f.seedSnapshot(t)

	anonymous := false
	grant, err := f.share.Issue(ctx, domain.IssueRequest{
		SnapshotID:     snap.ID.String(),
		IssuerID:       "cust-1",
		AllowAnonymous: &anonymous,
		Recipients:     []string{"friend@example.com"},
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// The restriction must survive the insert, not just the in-memory struct.
	var stored domain.ShareGrant
	if err := f.db.First(&stored, "id = ?", grant.ID).Error; err != nil {
		t.Fatalf("reload grant: %v", err)
	}
	if stored.AllowAnonymous {
		t.Fatalf("expected stored grant to disallow anonymous access")
	}

	_, err = f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for anonymous caller, got %v", err)
	}

	_, err = f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token, CallerID: "stranger@example.com"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-recipient, got %v", err)
	}

	if _, err := f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token, CallerID: "Friend@Example.com"}); err != nil {
		t.Fatalf("resolve as recipient: %v", err)
	}
}

func TestResolveDeletedSnapshot(t *testing.T) {
	f := setupShareFixture(t)
	ctx := context.Background()
	snap := f.seedSnapshot(t)

	grant, err := f.share.Issue(ctx, domain.IssueRequest{
		SnapshotID: snap.ID.String(),
		IssuerID:   "cust-1",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := f.snapshot.Delete(ctx, snap.ID.String()); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}

	_, err = f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found once snapshot is gone, got %v", err)
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	f := setupShareFixture(t)
	ctx := context.Background()
	snap := f.seedSnapshot(t)

	grant, err := f.share.Issue(ctx, domain.IssueRequest{
		SnapshotID: snap.ID.String(),
		IssuerID:   "cust-1",
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	revoked, err := f.share.Revoke(ctx, grant.ID.String())
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if !revoked {
		t.Fatalf("expected first revoke to report true")
	}

	again, err := f.share.Revoke(ctx, grant.ID.String())
	if err != nil {
		t.Fatalf("second revoke: %v", err)
	}
	if again {
		t.Fatalf("expected second revoke to report false")
	}

	_, err = f.share.Resolve(ctx, domain.ResolveRequest{Token: grant.Token})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not_found after revoke, got %v", err)
	}
}

func TestListByIssuer(t *testing.T) {
	f := setupShareFixture(t)
	ctx := context.Background()
	snap := f.seedSnapshot(t)

	for i := 0; i < 3; i++ {
		if _, err := f.share.Issue(ctx, domain.IssueRequest{
			SnapshotID: snap.ID.String(),
			IssuerID:   "cust-1",
		}); err != nil {
			t.Fatalf("issue: %v", err)
		}
	}
	if _, err := f.share.Issue(ctx, domain.IssueRequest{
		SnapshotID: snap.ID.String(),
		IssuerID:   "cust-2",
	}); err != nil {
		t.Fatalf("issue: %v", err)
	}

	grants, err := f.share.ListByIssuer(ctx, "cust-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(grants) != 3 {
		t.Fatalf("expected 3 grants for cust-1, got %d", len(grants))
	}
}
