package user

import (
	"context"
	"regexp"
	"strings"

	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Register validates the sign-up form and stores the new user.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegistrationRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if req.Name == "" || req.Email == "" || req.Mobile == "" || req.Password == "" {
		return nil, utils.NewValidationError("all fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, utils.NewValidationError("passwords do not match")
	}
	if !mobilePattern.MatchString(req.Mobile) {
		return nil, utils.NewValidationError("mobile number must be exactly 10 digits")
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.Logger.Info("User registered", zap.String("email", user.Email))
	return user, nil
}
