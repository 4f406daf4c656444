package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextSessionID = "session_id"
)

// AuthMW wraps the token service and session repository for middleware
type AuthMW struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
	}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.sessionRepo)
}

// ActorFrom builds the authenticated actor from the request context
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	rawID := c.GetString(ContextUserID)
	role := c.GetString(ContextUserRole)
	if rawID == "" || role == "" {
		return domain.Actor{}, false
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: uint(id), Role: domain.Role(role)}, true
}
