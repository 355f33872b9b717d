package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffhub/employee-system/internal/core/domain"
)

type stubAuthService struct {
	users map[string]*domain.User
}

func (s *stubAuthService) Register(context.Context, string, string, string, string) (string, *domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Verify(_ context.Context, userID string) (*domain.User, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func signToken(t *testing.T, secret, sub, role string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{users: map[string]*domain.User{
		"u1": {ID: "u1", Name: "Ann", Email: "ann@x.com", Role: domain.RoleAdmin},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", "u1", domain.RoleAdmin, time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret", auth, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "u1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(ContextRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		user, _ := c.Get(ContextUser).(*domain.User)
		if user == nil || user.Email != "ann@x.com" {
			t.Fatalf("user record not attached")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func expectUnauthorized(t *testing.T, auth *stubAuthService, decorate func(*http.Request)) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	decorate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", auth, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	expectUnauthorized(t, &stubAuthService{}, func(*http.Request) {})
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	expectUnauthorized(t, &stubAuthService{}, func(req *http.Request) {
		req.Header.Set("Authorization", "Token abc")
	})
}

func TestAuthMiddleware_EmptyTokenSegment(t *testing.T) {
	expectUnauthorized(t, &stubAuthService{}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer ")
	})
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	expectUnauthorized(t, &stubAuthService{}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
	})
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", "u1", domain.RoleEmployee, time.Hour)
	expectUnauthorized(t, &stubAuthService{}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	token := signToken(t, "secret", "u1", domain.RoleEmployee, -time.Hour)
	auth := &stubAuthService{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleEmployee},
	}}
	expectUnauthorized(t, auth, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	// Signature is valid but the subject no longer resolves; externally this
	// is indistinguishable from any other rejection.
	token := signToken(t, "secret", "gone", domain.RoleEmployee, time.Hour)
	expectUnauthorized(t, &stubAuthService{}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
}
