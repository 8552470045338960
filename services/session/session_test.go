package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"rideshare/models"
	"rideshare/utils"
)

func newManager(clock *utils.FakeClock) *Manager {
	return NewManager([]byte("test-secret"), time.Hour, NewMemoryStore(clock), clock, nil)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	clock := utils.NewFakeClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	m := newManager(clock)
	ann := models.Identity{Name: "Ann", Email: "ann@example.com", Mobile: "0123456789"}

	token, err := m.Start(ctx, ann)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	got, err := m.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != ann {
		t.Fatalf("Resolve = %+v, want %+v", got, ann)
	}

	renamed := ann
	renamed.Name = "Annie"
	if err := m.Refresh(ctx, token, renamed); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got, _ := m.Resolve(ctx, token); got.Name != "Annie" {
		t.Fatalf("Resolve after Refresh = %+v", got)
	}

	if err := m.End(ctx, token); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := m.Resolve(ctx, token); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("Resolve after End err = %v, want authorization", err)
	}
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	clock := utils.NewFakeClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	m := newManager(clock)

	token, err := m.Start(ctx, models.Identity{Name: "Bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	clock.Advance(2 * time.Hour)
	if _, err := m.Resolve(ctx, token); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("Resolve expired err = %v, want authorization", err)
	}
}

func TestResolveRejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	clock := utils.NewFakeClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	other := NewManager([]byte("other-secret"), time.Hour, NewMemoryStore(clock), clock, nil)
	token, err := other.Start(ctx, models.Identity{Email: "eve@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newManager(clock).Resolve(ctx, token); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("Resolve foreign token err = %v, want authorization", err)
	}
	if _, err := newManager(clock).Resolve(ctx, "garbage"); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("Resolve garbage err = %v, want authorization", err)
	}
}

func TestIdentityContext(t *testing.T) {
	if _, ok := CurrentIdentity(context.Background()); ok {
		t.Fatal("empty context reported an identity")
	}
	ctx := WithIdentity(context.Background(), models.Identity{Email: "ann@example.com"})
	if id, ok := CurrentIdentity(ctx); !ok || id.Email != "ann@example.com" {
		t.Fatalf("CurrentIdentity = %+v, %v", id, ok)
	}
}
