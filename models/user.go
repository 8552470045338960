// models/user.go
package models

import "time"

// User represents a registered platform user. Email is the unique key.
type User struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Identity is the authenticated actor as seen by the ledger.
type Identity struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

func (u User) Identity() Identity {
	return Identity{Name: u.Name, Email: u.Email, Mobile: u.Mobile}
}

// PublicUser is a User without its password.
type PublicUser struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{Name: u.Name, Email: u.Email, Mobile: u.Mobile, CreatedAt: u.CreatedAt}
}

// RegistrationRequest carries the sign-up form.
type RegistrationRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SettingsUpdate carries the editable profile fields.
type SettingsUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
