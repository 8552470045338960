package utils

import (
	"context"
	"sync"
	"time"
)

// Pinger is anything whose liveness can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Components map[string]bool `json:"components"`
	CheckedAt  time.Time       `json:"checkedAt"`
}

// Healthy reports whether every component answered.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Components {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every component once and stores the result.
func CheckHealth(ctx context.Context, clock Clock, components map[string]Pinger) HealthStatus {
	status := HealthStatus{Components: make(map[string]bool, len(components)), CheckedAt: clock.Now()}
	for name, p := range components {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		status.Components[name] = p.Ping(pingCtx) == nil
		cancel()
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, clock Clock, components map[string]Pinger) {
	CheckHealth(ctx, clock, components)
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, clock, components)
			}
		}
	}()
}
