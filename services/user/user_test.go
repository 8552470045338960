package user

import (
	"context"
	"errors"
	"testing"
	"time"

	userRepo "rideshare/database/repository/user"
	"rideshare/database/store"
	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

func newService() *DefaultUserService {
	clock := utils.NewFakeClock(time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC))
	return NewDefaultUserService(userRepo.NewStoreUserRepo(store.NewMemoryStore()), clock, zap.NewNop())
}

func validRequest() models.RegistrationRequest {
	return models.RegistrationRequest{
		Name:            "Ann",
		Email:           "ann@example.com",
		Mobile:          "0123456789",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.RegistrationRequest)
	}{
		{"missing name", func(r *models.RegistrationRequest) { r.Name = " " }},
		{"password mismatch", func(r *models.RegistrationRequest) { r.ConfirmPassword = "other" }},
		{"short mobile", func(r *models.RegistrationRequest) { r.Mobile = "12345" }},
		{"letters in mobile", func(r *models.RegistrationRequest) { r.Mobile = "01234abcde" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(&req)
			if _, err := newService().Register(context.Background(), req); !errors.Is(err, utils.ErrValidation) {
				t.Fatalf("Register err = %v, want validation", err)
			}
		})
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	u, err := svc.Register(ctx, validRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}
	if _, err := svc.Register(ctx, validRequest()); !errors.Is(err, utils.ErrDuplicate) {
		t.Fatalf("duplicate Register err = %v", err)
	}

	id, err := svc.Authenticate(ctx, "ann@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if id.Mobile != "0123456789" {
		t.Fatalf("identity = %+v", id)
	}
	if _, err := svc.Authenticate(ctx, "ann@example.com", "wrong"); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret"); !errors.Is(err, utils.ErrAuthorization) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	if _, err := svc.Register(ctx, validRequest()); err != nil {
		t.Fatal(err)
	}
	bob := validRequest()
	bob.Email = "bob@example.com"
	if _, err := svc.Register(ctx, bob); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateSettings(ctx, "ann@example.com", models.SettingsUpdate{Name: "Ann", Email: "bob@example.com"}); !errors.Is(err, utils.ErrDuplicate) {
		t.Fatalf("taken email err = %v", err)
	}
	if _, err := svc.UpdateSettings(ctx, "ghost@example.com", models.SettingsUpdate{Name: "G", Email: "g@example.com"}); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("missing user err = %v", err)
	}

	u, err := svc.UpdateSettings(ctx, "ann@example.com", models.SettingsUpdate{Name: "Annie", Email: "annie@example.com"})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if u.Name != "Annie" || u.Email != "annie@example.com" {
		t.Fatalf("updated = %+v", u)
	}
	if _, err := svc.GetProfile(ctx, "ann@example.com"); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("old email still resolves: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "annie@example.com", "secret"); err != nil {
		t.Fatalf("Authenticate with new email: %v", err)
	}
}
