package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	log     logrus.FieldLogger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, log logrus.FieldLogger) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		log:     log.WithField("handler", "auth"),
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone"`
	MatricNumber string `json:"matric_number" binding:"required_if=Role artisan"`
	Role         string `json:"role" binding:"required,oneof=student artisan"`
	BusinessName string `json:"business_name"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegistrationRequest{
		Email:        req.Email,
		Password:     req.Password,
		FullName:     req.FullName,
		Phone:        req.Phone,
		MatricNumber: req.MatricNumber,
		Role:         domain.Role(req.Role),
		BusinessName: req.BusinessName,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	message := "User registered successfully."
	if user.Role == domain.RoleArtisan {
		message = "Artisan registered successfully. Your profile is pending verification."
	}
	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": message,
			"user":    user,
		},
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"user":          result.User,
		},
	})
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
		},
	})
}

// Me returns the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// Logout ends the current session
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)
	if sessionID == "" {
		respondError(c, h.log, domain.ErrUnauthorized)
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out successfully",
		},
	})
}
