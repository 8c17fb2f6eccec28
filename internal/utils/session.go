// internal/utils/session.go
package utils

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saileshbalu94/ecommerce-ai/internal/models"
)

// Session is the authenticated caller for one request. It is built by the
// auth middleware and travels in the request context.
type Session struct {
	UserID       uuid.UUID
	Email        string
	Role         models.UserRole
	Subscription models.Subscription
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.UserRoleAdmin
}

type sessionKey struct{}

const ginSessionKey = "session"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// SetSession attaches the session to both the gin context and the request
// context so services see the same caller.
func SetSession(c *gin.Context, s *Session) {
	c.Set(ginSessionKey, s)
	c.Set("user_id", s.UserID.String())
	c.Request = c.Request.WithContext(WithSession(c.Request.Context(), s))
}

func GetSession(c *gin.Context) (*Session, bool) {
	if v, exists := c.Get(ginSessionKey); exists {
		if s, ok := v.(*Session); ok && s != nil {
			return s, true
		}
	}
	return SessionFromContext(c.Request.Context())
}
