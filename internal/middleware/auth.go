package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/constants"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/services"
)

// Authenticator resolves a bearer token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (authz.Identity, error)
}

// RequireAuth rejects requests without a valid, unrevoked bearer token.
func RequireAuth(auth Authenticator, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			apierrors.Abort(c, apierrors.NewAPIError(apierrors.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if !authenticate(c, auth, log, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the identity when an Authorization header is sent and
// lets requests without one through. A header that is sent but malformed or
// invalid is rejected.
func OptionalAuth(auth Authenticator, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, present := bearerToken(c); present && !authenticate(c, auth, log, token) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, auth Authenticator, log logging.Logger, token string) bool {
	if token == "" {
		apierrors.Abort(c, apierrors.NewAPIError(apierrors.ErrCodeInvalidCredential, "Malformed Authorization header"))
		return false
	}

	id, err := auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredential):
			apierrors.Abort(c, apierrors.NewAPIError(apierrors.ErrCodeInvalidCredential, "Invalid or expired token"))
		case errors.Is(err, services.ErrSessionRevoked):
			apierrors.Abort(c, apierrors.NewAPIError(apierrors.ErrCodeSessionRevoked, "Session is no longer active"))
		default:
			log.Error(c.Request.Context(), "authenticate request", "error", err)
			apierrors.Abort(c, apierrors.NewAPIError(apierrors.ErrCodeUnknown, "Internal server error"))
		}
		return false
	}

	c.Set(constants.ContextKeyIdentity, id)
	c.Set(constants.ContextKeyUserID, id.UserID)
	return true
}

// bearerToken reports whether an Authorization header was sent and returns its
// bearer token. The token is empty when the header is not "Bearer <token>".
func bearerToken(c *gin.Context) (token string, present bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return "", true
	}
	return strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix)), true
}

// GetIdentity retrieves the authenticated caller from context
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	v, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return authz.Identity{}, false
	}
	id, ok := v.(authz.Identity)
	return id, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
