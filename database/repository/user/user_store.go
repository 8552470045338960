package userRepo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rideshare/database/store"
	"rideshare/models"
	"rideshare/utils"
)

// StoreUserRepo implements UserRepository on the users collection.
type StoreUserRepo struct {
	store store.Store
	mu    sync.Mutex
}

// NewStoreUserRepo creates a user repository backed by s.
func NewStoreUserRepo(s store.Store) UserRepository {
	return &StoreUserRepo{store: s}
}

// SameEmail compares emails the way user lookups do.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (r *StoreUserRepo) load(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()
	var users []models.User
	if err := store.Load(ctx, r.store, store.Users, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (r *StoreUserRepo) save(ctx context.Context, users []models.User) error {
	ctx, cancel := context.WithTimeout(ctx, utils.StoreTimeout)
	defer cancel()
	if users == nil {
		users = []models.User{}
	}
	if err := store.Save(ctx, r.store, store.Users, users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

func (r *StoreUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if SameEmail(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, utils.NewNotFoundError("user %s not found", email)
}

func (r *StoreUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return r.load(ctx)
}

func (r *StoreUserRepo) Create(ctx context.Context, user *models.User) error {
	return r.Update(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if SameEmail(u.Email, user.Email) {
				return nil, utils.NewDuplicateError("email %s is already registered", user.Email)
			}
		}
		return append(users, *user), nil
	})
}

func (r *StoreUserRepo) Update(ctx context.Context, fn func([]models.User) ([]models.User, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	users, err = fn(users)
	if err != nil {
		return err
	}
	return r.save(ctx, users)
}
