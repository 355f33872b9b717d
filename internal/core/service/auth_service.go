package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/ports"
)

// AuthService implements registration, login and identity resolution.
// Throttle and audit are optional; nil disables them.
type AuthService struct {
	repo      ports.AuthRepository
	throttle  ports.LoginThrottle
	audit     ports.AuditRecorder
	logger    zerolog.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 240 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// WithThrottle enables failed-login throttling.
func (s *AuthService) WithThrottle(t ports.LoginThrottle) *AuthService {
	s.throttle = t
	return s
}

// WithAudit enables asynchronous audit recording.
func (s *AuthService) WithAudit(a ports.AuditRecorder) *AuthService {
	s.audit = a
	return s
}

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (string, *domain.User, error) {
	if name == "" || email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return "", nil, domain.ErrInvalidCredentials
	}

	// Fast path only; the unique index on email is the real guarantee and
	// Create maps its violation to ErrUserExists.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditEvent{ActorID: created.ID, Action: domain.AuditRegistered, Subject: created.Email})
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			// A throttle outage must never lock everyone out.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same externally visible outcome as a bad password so the
			// endpoint cannot be used to enumerate registered emails.
			s.logger.Debug().Str("email", email).Msg("login failed: unknown email")
			s.loginFailed(ctx, email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		s.logger.Debug().Str("user_id", user.ID).Msg("login failed: password mismatch")
		s.loginFailed(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditEvent{ActorID: user.ID, Action: domain.AuditLoginSuccess, Subject: user.Email})
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return token, user, nil
}

func (s *AuthService) Verify(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) loginFailed(ctx context.Context, email string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	s.record(domain.AuditEvent{Action: domain.AuditLoginFailure, Subject: email})
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Record(event)
}
