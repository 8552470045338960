package userRepo

import (
	"context"

	"rideshare/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByEmail retrieves a user by email, or a NotFound error.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAll retrieves all users in registration order.
	GetAll(ctx context.Context) ([]models.User, error)
	// Create inserts a new user; a Duplicate error when the email is taken.
	Create(ctx context.Context, user *models.User) error
	// Update loads all users, lets fn modify them and saves the result.
	// Nothing is written when fn fails.
	Update(ctx context.Context, fn func(users []models.User) ([]models.User, error)) error
}
