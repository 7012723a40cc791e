// Package auth wraps the hosted identity service behind a capability
// interface: sign up, sign in, resolve a bearer token to a user.
package auth

import (
	"context"
	"errors"
)

// ErrAuthFailed is returned when the identity service rejects a sign-up
// or sign-in (duplicate email, wrong password, policy violation).
var ErrAuthFailed = errors.New("authentication failed")

// User is the caller resolved from a bearer token. Email may be nil.
type User struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
}

// Session is the token pair issued on sign-up/sign-in. Opaque to this
// layer afterwards except as a bearer token to resolve later.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
	User         User   `json:"user"`
}

// Provider is the identity service contract. GetUser returns (nil, nil)
// for invalid, expired or unknown tokens; an error means the service
// itself failed.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	GetUser(ctx context.Context, token string) (*User, error)
}
