package user

import (
	"context"
	"strings"

	userRepo "rideshare/database/repository/user"
	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

// UpdateSettings changes a user's name and email. Rides and bookings keep
// the email they were created with.
func (s *DefaultUserService) UpdateSettings(ctx context.Context, currentEmail string, update models.SettingsUpdate) (*models.User, error) {
	name := strings.TrimSpace(update.Name)
	email := strings.TrimSpace(update.Email)
	if name == "" || email == "" {
		return nil, utils.NewValidationError("name and email are required")
	}

	var updated models.User
	err := s.Repo.Update(ctx, func(users []models.User) ([]models.User, error) {
		idx := -1
		for i := range users {
			if userRepo.SameEmail(users[i].Email, currentEmail) {
				idx = i
				continue
			}
			if userRepo.SameEmail(users[i].Email, email) {
				return nil, utils.NewDuplicateError("email %s is already registered", email)
			}
		}
		if idx < 0 {
			return nil, utils.NewNotFoundError("user %s not found", currentEmail)
		}
		users[idx].Name = name
		users[idx].Email = email
		users[idx].UpdatedAt = s.Clock.Now()
		updated = users[idx]
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("User settings updated", zap.String("from", currentEmail), zap.String("to", email))
	return &updated, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	return s.Repo.GetByEmail(ctx, email)
}
