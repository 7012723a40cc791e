package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hobbykit/internal/auth"
)

// Mock auth provider for testing
type mockProvider struct {
	getUserFunc func(ctx context.Context, token string) (*auth.User, error)
}

func (m *mockProvider) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProvider) GetUser(ctx context.Context, token string) (*auth.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, token)
	}
	return nil, nil
}

func userEcho(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.ID})
}

func TestRequireUser_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := &mockProvider{
		getUserFunc: func(ctx context.Context, token string) (*auth.User, error) {
			if token != "good-token" {
				return nil, nil
			}
			return &auth.User{ID: "user-1"}, nil
		},
	}

	r := gin.New()
	r.GET("/test", RequireUser(provider), userEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["user"] != "user-1" {
		t.Errorf("expected user user-1, got %v", resp["user"])
	}
}

func TestRequireUser_Rejections(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := &mockProvider{} // resolves nothing

	r := gin.New()
	r.GET("/test", RequireUser(provider), userEcho)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed scheme", "Token abc"},
		{"bare bearer", "Bearer "},
		{"unresolvable token", "Bearer unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", w.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Error != "unauthorized" {
				t.Errorf("expected error unauthorized, got %q", resp.Error)
			}
		})
	}
}

func TestRequireUser_ProviderError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := &mockProvider{
		getUserFunc: func(ctx context.Context, token string) (*auth.User, error) {
			return nil, errors.New("identity service unreachable")
		},
	}

	r := gin.New()
	r.GET("/test", RequireUser(provider), userEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestOptionalUser_Anonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := &mockProvider{}
	r := gin.New()
	r.GET("/test", OptionalUser(provider), userEcho)

	for _, header := range []string{"", "Bearer unknown", "Token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("header %q: expected status 200, got %d", header, w.Code)
		}
		var resp map[string]any
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp["user"] != nil {
			t.Errorf("header %q: expected nil user, got %v", header, resp["user"])
		}
	}
}

func TestOptionalUser_WithToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := &mockProvider{
		getUserFunc: func(ctx context.Context, token string) (*auth.User, error) {
			return &auth.User{ID: "user-2"}, nil
		},
	}
	r := gin.New()
	r.GET("/test", OptionalUser(provider), userEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer any")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["user"] != "user-2" {
		t.Errorf("expected user user-2, got %v", resp["user"])
	}
}
