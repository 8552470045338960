// Package session issues and resolves the bearer tokens that identify the
// acting user on every request.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rideshare/models"
	"rideshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provider resolves tokens to identities.
type Provider interface {
	Start(ctx context.Context, identity models.Identity) (string, error)
	Resolve(ctx context.Context, token string) (models.Identity, error)
	Refresh(ctx context.Context, token string, identity models.Identity) error
	End(ctx context.Context, token string) error
}

// Manager signs tokens with a shared secret and stores the identity under
// the token id.
type Manager struct {
	Secret []byte
	TTL    time.Duration
	Store  Store
	Clock  utils.Clock
	Logger *zap.Logger
}

func NewManager(secret []byte, ttl time.Duration, store Store, clock utils.Clock, logger *zap.Logger) *Manager {
	if clock == nil {
		clock = utils.RealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{Secret: secret, TTL: ttl, Store: store, Clock: clock, Logger: logger}
}

func (m *Manager) Start(ctx context.Context, identity models.Identity) (string, error) {
	now := m.Clock.Now()
	id := uuid.New().String()
	token, err := utils.GenerateToken(m.Secret, identity.Email, id, now, m.TTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	s := utils.AuthSession{
		Name:          identity.Name,
		Email:         identity.Email,
		Mobile:        identity.Mobile,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := m.Store.Save(ctx, id, s, m.TTL); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	m.Logger.Debug("Session started", zap.String("email", identity.Email))
	return token, nil
}

func (m *Manager) tokenID(token string) (string, error) {
	claims, err := utils.ValidateToken(m.Secret, token, m.Clock.Now())
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return "", utils.NewAuthorizationError("session expired")
		}
		return "", utils.NewAuthorizationError("invalid session token")
	}
	return claims.Id, nil
}

func (m *Manager) Resolve(ctx context.Context, token string) (models.Identity, error) {
	id, err := m.tokenID(token)
	if err != nil {
		return models.Identity{}, err
	}
	s, err := m.Store.Get(ctx, id)
	if errors.Is(err, utils.ErrSessionNotFound) {
		return models.Identity{}, utils.NewAuthorizationError("session ended")
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to load session: %w", err)
	}
	return models.Identity{Name: s.Name, Email: s.Email, Mobile: s.Mobile}, nil
}

// Refresh rebinds an existing session to an updated identity, for example
// after a settings change.
func (m *Manager) Refresh(ctx context.Context, token string, identity models.Identity) error {
	id, err := m.tokenID(token)
	if err != nil {
		return err
	}
	s, err := m.Store.Get(ctx, id)
	if errors.Is(err, utils.ErrSessionNotFound) {
		return utils.NewAuthorizationError("session ended")
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	s.Name, s.Email, s.Mobile = identity.Name, identity.Email, identity.Mobile
	s.LastUpdatedAt = m.Clock.Now()
	if err := m.Store.Save(ctx, id, *s, m.TTL); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (m *Manager) End(ctx context.Context, token string) error {
	id, err := m.tokenID(token)
	if err != nil {
		return err
	}
	if err := m.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
