package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseProvider talks to a Supabase (GoTrue compatible) identity
// service over its REST API. Token storage, hashing and expiry are the
// service's concern; this client only maps requests and responses.
type SupabaseProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSupabase creates a provider for the identity service at baseURL,
// authenticating requests with apiKey
func NewSupabase(baseURL, apiKey string) *SupabaseProvider {
	return &SupabaseProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Wire shapes of the identity service
type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	TokenType    string      `json:"token_type"`
	User         *gotrueUser `json:"user"`
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (p *SupabaseProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return p.sessionRequest(ctx, "/auth/v1/signup", email, password)
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return p.sessionRequest(ctx, "/auth/v1/token?grant_type=password", email, password)
}

func (p *SupabaseProvider) GetUser(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	defer resp.Body.Close()

	// Invalid, expired or unknown tokens are not errors: the caller is
	// simply anonymous
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity service returned status %d", resp.StatusCode)
	}

	var u gotrueUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return toUser(u), nil
}

func (p *SupabaseProvider) sessionRequest(ctx context.Context, path, email, password string) (*Session, error) {
	payload, err := json.Marshal(credentialsBody{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call identity service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read auth response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrAuthFailed, providerMessage(body))
	}

	var sess gotrueSession
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&sess); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if sess.AccessToken == "" || sess.User == nil {
		// Providers with email confirmation enabled return a user but
		// no session; this API expects a usable token pair
		return nil, fmt.Errorf("%w: session missing from provider response", ErrAuthFailed)
	}

	return &Session{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
		TokenType:    sess.TokenType,
		User:         *toUser(*sess.User),
	}, nil
}

func toUser(u gotrueUser) *User {
	user := &User{ID: u.ID}
	if u.Email != "" {
		email := u.Email
		user.Email = &email
	}
	return user
}

// providerMessage extracts a human-readable reason from the identity
// service's error body, which varies across versions
func providerMessage(body []byte) string {
	var e gotrueError
	if err := json.Unmarshal(body, &e); err == nil {
		for _, msg := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	return "provider rejected credentials"
}
