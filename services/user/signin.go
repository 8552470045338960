package user

import (
	"context"
	"errors"

	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

// Authenticate checks an email and password pair.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return models.Identity{}, utils.NewAuthorizationError("invalid email or password")
		}
		s.Logger.Error("Authenticate: user lookup failed", zap.Error(err))
		return models.Identity{}, err
	}
	if u.Password != password {
		return models.Identity{}, utils.NewAuthorizationError("invalid email or password")
	}
	return u.Identity(), nil
}
