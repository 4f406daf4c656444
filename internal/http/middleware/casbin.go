package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/config"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/auth"
)

// CasbinMW wraps the casbin enforcer and ownership rules for middleware
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
	rules    []config.OwnershipRule
	log      logrus.FieldLogger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.CasbinEnforcer, rules []config.OwnershipRule, log logrus.FieldLogger) *CasbinMW {
	return &CasbinMW{enforcer: enforcer, rules: rules, log: log.WithField("component", "casbin_mw")}
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.KindForbidden, "message": message})
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": domain.KindInternal, "message": "Internal server error"})
}

// isOwner reports whether a configured ownership rule for this route names the token user
func (mw *CasbinMW) isOwner(c *gin.Context, tokenUserID string) bool {
	for _, rule := range mw.rules {
		if rule.Path != c.FullPath() || rule.Method != c.Request.Method {
			continue
		}
		if requestUserID := extractUserID(c, rule.Source, rule.ParamName); requestUserID != "" && requestUserID == tokenUserID {
			return true
		}
	}
	return false
}

// Enforce returns the casbin authorization middleware.
// The primary role is checked first; owners fall back to the owner subject.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		tokenUserID := c.GetString(ContextUserID)
		primaryRole := c.GetString(ContextUserRole)
		if tokenUserID == "" || primaryRole == "" {
			abortUnauthorized(c, "User ID or role not found in token")
			return
		}

		if headerUserID := c.GetHeader("x-user-id"); headerUserID != "" && headerUserID != tokenUserID {
			abortForbidden(c, "Header x-user-id does not match token user ID")
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.enforcer.Enforce(auth.Subject(primaryRole), path, method)
		if err != nil {
			mw.log.WithError(err).Error("authorization check failed")
			abortInternal(c)
			return
		}

		if !allowed && mw.isOwner(c, tokenUserID) {
			allowed, err = mw.enforcer.Enforce(auth.OwnerSubject, path, method)
			if err != nil {
				mw.log.WithError(err).Error("owner authorization check failed")
				abortInternal(c)
				return
			}
		}

		if !allowed {
			mw.log.WithFields(logrus.Fields{"user_id": tokenUserID, "role": primaryRole, "path": path, "method": method}).
				Info("access denied")
			abortForbidden(c, "Access denied")
			return
		}

		c.Next()
	})
}
