package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/internal/http/handlers"
	"github.com/talentnest247/Talentnest-sub001/internal/http/middleware"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth         *handlers.AuthHandlers
	Policy       *handlers.PolicyHandlers
	Verification *handlers.VerificationHandlers
	Listing      *handlers.ListingHandlers
	Upload       *handlers.UploadHandlers
	Profile      *handlers.ProfileHandlers
}

// BuildRouter wires routes to handlers. Everything except /health, /auth and the
// public listing passes through JWT validation and casbin enforcement.
func BuildRouter(h Handlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	r.GET("/artisans/verified", h.Listing.ListVerified)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", h.Auth.Me)
	v.POST("/auth/logout", h.Auth.Logout)

	v.POST("/upload", h.Upload.Upload)
	v.DELETE("/upload", h.Upload.Delete)

	v.GET("/artisans/:user_id/profile", h.Profile.Get)
	v.PUT("/artisans/:user_id/profile", h.Profile.Update)
	v.POST("/artisans/:user_id/profile/submit", h.Profile.Submit)
	v.POST("/artisans/:user_id/documents", h.Profile.AttachDocument)
	v.DELETE("/artisans/:user_id/documents/:doc_id", h.Profile.RemoveDocument)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/verification", h.Verification.ListPending)
	adm.POST("/verification", h.Verification.Decide)
	adm.GET("/policies", h.Policy.List)
	adm.POST("/policies", h.Policy.Add)
	adm.DELETE("/policies", h.Policy.Remove)

	return r
}
