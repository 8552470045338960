package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	if got := parseLevel(" WARN ", zapcore.InfoLevel); got != zapcore.WarnLevel {
		t.Fatalf("parseLevel(WARN) = %v", got)
	}
	if got := parseLevel("", zapcore.DebugLevel); got != zapcore.DebugLevel {
		t.Fatalf("empty level should fall back, got %v", got)
	}
	if got := parseLevel("loud", zapcore.InfoLevel); got != zapcore.InfoLevel {
		t.Fatalf("unknown level should fall back, got %v", got)
	}
}

func TestNewLoggerConfig(t *testing.T) {
	prod := newLoggerConfig(true, "")
	if prod.Encoding != "json" || prod.Level.Level() != zapcore.InfoLevel {
		t.Fatalf("production config = %s/%v", prod.Encoding, prod.Level.Level())
	}
	dev := newLoggerConfig(false, "error")
	if dev.Encoding != "console" || dev.Level.Level() != zapcore.ErrorLevel {
		t.Fatalf("development config = %s/%v", dev.Encoding, dev.Level.Level())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewValidationError("bad seats"), http.StatusBadRequest},
		{NewDuplicateError("taken"), http.StatusConflict},
		{NewSoldOutError("full"), http.StatusConflict},
		{fmt.Errorf("wrapped: %w", NewNotFoundError("ride")), http.StatusNotFound},
		{NewAuthorizationError("not yours"), http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestAppErrorMatchesByKind(t *testing.T) {
	err := fmt.Errorf("book: %w", NewSoldOutError("ride %s", "r1"))
	if !errors.Is(err, ErrSoldOut) {
		t.Fatal("expected sold-out error to match ErrSoldOut")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("sold-out error must not match ErrNotFound")
	}
}

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)
	c.Advance(90 * time.Second)
	if d := c.Now().Sub(start); d != 90*time.Second {
		t.Fatalf("advanced %v, want 90s", d)
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckHealth(t *testing.T) {
	clock := NewFakeClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	status := CheckHealth(context.Background(), clock, map[string]Pinger{
		"store": pingFunc(func(context.Context) error { return nil }),
		"redis": pingFunc(func(context.Context) error { return errors.New("refused") }),
	})
	if status.Healthy() {
		t.Fatal("status with a failing component reported healthy")
	}
	if !status.Components["store"] || status.Components["redis"] {
		t.Fatalf("components = %v", status.Components)
	}
	if got := GetHealthStatus(); !got.CheckedAt.Equal(clock.Now()) {
		t.Fatalf("stored CheckedAt = %v", got.CheckedAt)
	}
}
