package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.KindUnauthorized, "message": message})
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || strings.TrimSpace(tokenParts[1]) == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(strings.TrimSpace(tokenParts[1]))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				abortUnauthorized(c, "Token expired")
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		// Sessions live in Redis; logging out revokes every token bound to the session.
		if claims.SessionID == "" {
			abortUnauthorized(c, "Token is not bound to a session")
			return
		}
		session, err := sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil || session == nil {
			abortUnauthorized(c, "Session invalid or expired")
			return
		}
		if session.UserID != claims.UserID {
			abortUnauthorized(c, "Session user mismatch")
			return
		}

		// user_id is kept as a string for casbin and ownership comparisons
		c.Set(ContextUserID, strconv.FormatUint(uint64(claims.UserID), 10))
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextSessionID, claims.SessionID)

		c.Next()
	})
}
