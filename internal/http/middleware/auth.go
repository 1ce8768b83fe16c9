package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-nutrition-backend/internal/auth"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

const userIDHeader = "X-User-ID"

// Auth resolves the caller's identity and stores it under UserIDKey.
//
// With a TokenService, a valid "Authorization: Bearer <jwt>" is required and
// its subject becomes the user id. Without one (no JWT_SECRET configured) the
// X-User-ID header is trusted, which is meant for local development and tests.
// Requests without an identity are rejected with 401.
func Auth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			uid := strings.TrimSpace(c.GetHeader(userIDHeader))
			if uid == "" {
				unauthorized(c, "X-User-ID header required")
				return
			}
			setUser(c, uid)
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "bearer token required")
			return
		}
		uid, err := tokens.Validate(raw)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
			LoggerFrom(c).Debug().Err(err).Msg("token rejected")
			unauthorized(c, msg)
			return
		}
		setUser(c, uid)
		c.Next()
	}
}

func setUser(c *gin.Context, uid string) { c.Set(UserIDKey, uid) }

// bearerToken extracts the credentials of a Bearer authorization header.
func bearerToken(h string) (string, bool) {
	scheme, cred, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	cred = strings.TrimSpace(cred)
	return cred, cred != ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}
