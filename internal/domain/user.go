package domain

import (
	"context"
	"strings"
)

// User is the signed-in account as the backend reports it.
// swagger:model User
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	IsRegistered bool   `json:"isRegistered"`
}

// DisplayName returns "First Last", falling back to the email address.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

type Credentials struct {
	Email    string
	Password string
}

type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Credentials returns the sign-in pair for a freshly created account.
func (in SignUpInput) Credentials() Credentials {
	return Credentials{Email: in.Email, Password: in.Password}
}

// AuthAPI is the backend's account surface. SignIn and SignUp also return the backend
// session token the caller must present on later calls.
type AuthAPI interface {
	Me(ctx context.Context) (*User, error)
	SignUp(ctx context.Context, in SignUpInput) (*User, string, error)
	SignIn(ctx context.Context, creds Credentials) (*User, string, error)
	SignOut(ctx context.Context) error
}
