package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// FakeProvider is an in-memory Provider with the same contract as the
// hosted identity service. Tokens are deterministic per user so tests
// can resolve them across requests.
type FakeProvider struct {
	mu     sync.Mutex
	users  map[string]fakeUser // by email
	tokens map[string]User     // access token -> user
}

type fakeUser struct {
	id       string
	email    string
	password string
}

// NewFake creates an empty fake provider
func NewFake() *FakeProvider {
	return &FakeProvider{
		users:  make(map[string]fakeUser),
		tokens: make(map[string]User),
	}
}

func (p *FakeProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.users[email]; ok {
		return nil, fmt.Errorf("%w: user already registered", ErrAuthFailed)
	}
	u := fakeUser{id: uuid.New().String(), email: email, password: password}
	p.users[email] = u
	return p.sessionFor(u), nil
}

func (p *FakeProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.users[email]
	if !ok || u.password != password {
		return nil, fmt.Errorf("%w: invalid login credentials", ErrAuthFailed)
	}
	return p.sessionFor(u), nil
}

func (p *FakeProvider) GetUser(ctx context.Context, token string) (*User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if user, ok := p.tokens[token]; ok {
		found := user
		return &found, nil
	}
	return nil, nil
}

func (p *FakeProvider) sessionFor(u fakeUser) *Session {
	email := u.email
	user := User{ID: u.id, Email: &email}
	accessToken := "token-" + u.id
	p.tokens[accessToken] = user
	return &Session{
		AccessToken:  accessToken,
		RefreshToken: "refresh-" + u.id,
		ExpiresIn:    3600,
		TokenType:    "bearer",
		User:         user,
	}
}
