package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staffhub/employee-system/internal/api/metrics"
	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/ports"
)

// Context keys set by Auth on success.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextUser   = "user"
)

// Auth validates the Bearer token, resolves it to a stored user and injects
// the identity into the request context. A missing header, a bad signature,
// an expired token and a token whose subject no longer exists are logged as
// distinct failures but all answer 401, so the endpoint cannot be used to
// probe which accounts still exist.
func Auth(jwtSecret string, auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Debug().Str("path", c.Path()).Msg("auth: missing authorization header")
				return unauthorized("missing")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				log.Debug().Str("path", c.Path()).Msg("auth: malformed authorization header")
				return unauthorized("malformed")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				log.Debug().Err(err).Str("path", c.Path()).Msg("auth: invalid or expired token")
				return unauthorized("invalid")
			}

			sub, _ := claims["sub"].(string)
			user, err := auth.Verify(c.Request().Context(), sub)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					log.Debug().Str("user_id", sub).Msg("auth: token subject no longer exists")
					return unauthorized("unknown_subject")
				}
				return err
			}

			// The stored role is authoritative; the role claim is only a
			// hint for clients.
			c.Set(ContextUserID, user.ID)
			c.Set(ContextRole, user.Role)
			c.Set(ContextUser, user)

			return next(c)
		}
	}
}

func unauthorized(reason string) error {
	metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
}
