package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffhub/employee-system/internal/core/domain"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "u" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Blocked(_ context.Context, email string) (bool, error) {
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, email)
	return nil
}

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *stubAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}

func newTestAuthService(repo *stubAuthRepo) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)

	token, user, err := svc.Register(context.Background(), "Ann", "ann@x.com", "pw1", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleEmployee {
		t.Fatalf("expected default role employee, got %s", user.Role)
	}
	if user.PasswordHash == "pw1" || user.PasswordHash == "" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	if _, _, err := svc.Register(context.Background(), "", "a@x.com", "pw", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty name, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bob", "b@x.com", "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bob", "b@x.com", "pw", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Register(context.Background(), "Bob", "bob@x.com", "pw", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bobby", "bob@x.com", "pw2", ""); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)

	_, registered, err := svc.Register(context.Background(), "Carol", "carol@x.com", "s3cret", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login resolved a different identity: %s vs %s", user.ID, registered.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	_, _, _ = svc.Register(context.Background(), "Dave", "dave@x.com", "goodpass", "")
	if _, _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	// Deliberately the same error class as a wrong password so callers
	// cannot enumerate registered accounts.
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubAuthRepo()
	throttle := newStubThrottle(3)
	svc := newTestAuthService(repo).WithThrottle(throttle)

	_, _, _ = svc.Register(context.Background(), "Eve", "eve@x.com", "rightpw", "")

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Login(context.Background(), "eve@x.com", "wrongpw"); err != domain.ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Budget exhausted: even the correct password is refused now.
	if _, _, err := svc.Login(context.Background(), "eve@x.com", "rightpw"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	// A successful login clears the counter.
	_ = throttle.Reset(context.Background(), "eve@x.com")
	if _, _, err := svc.Login(context.Background(), "eve@x.com", "rightpw"); err != nil {
		t.Fatalf("expected login to succeed after reset, got %v", err)
	}
	if throttle.failures["eve@x.com"] != 0 {
		t.Fatalf("expected failure count cleared, got %d", throttle.failures["eve@x.com"])
	}
}

func TestAuthService_Login_Audited(t *testing.T) {
	audit := &stubAudit{}
	svc := newTestAuthService(newStubAuthRepo()).WithAudit(audit)

	_, _, _ = svc.Register(context.Background(), "Fay", "fay@x.com", "pw", "")
	_, _, _ = svc.Login(context.Background(), "fay@x.com", "wrong")
	_, _, _ = svc.Login(context.Background(), "fay@x.com", "pw")

	want := []string{domain.AuditRegistered, domain.AuditLoginFailure, domain.AuditLoginSuccess}
	got := audit.actions()
	if len(got) != len(want) {
		t.Fatalf("expected %d audit events, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAuthService_TokenExpiry(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Nanosecond, zerolog.Nop())

	token, _, err := svc.Register(context.Background(), "Gil", "gil@x.com", "pw", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	time.Sleep(2 * time.Second) // exp claims have second granularity

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestAuthService_Verify(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)

	_, user, err := svc.Register(context.Background(), "Hal", "hal@x.com", "pw", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resolved, err := svc.Verify(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if resolved.Email != "hal@x.com" {
		t.Fatalf("unexpected user: %+v", resolved)
	}

	// A token subject that no longer resolves must fail closed.
	delete(repo.users, user.ID)
	if _, err := svc.Verify(context.Background(), user.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound after deletion, got %v", err)
	}
}
