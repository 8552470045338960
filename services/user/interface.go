package user

import (
	"context"

	userRepo "rideshare/database/repository/user"
	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, req models.RegistrationRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.Identity, error)
	UpdateSettings(ctx context.Context, currentEmail string, update models.SettingsUpdate) (*models.User, error)
	GetProfile(ctx context.Context, email string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Clock  utils.Clock
	Logger *zap.Logger
}

func NewDefaultUserService(repo userRepo.UserRepository, clock utils.Clock, logger *zap.Logger) *DefaultUserService {
	if clock == nil {
		clock = utils.RealClock()
	}
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultUserService{Repo: repo, Clock: clock, Logger: logger}
}
