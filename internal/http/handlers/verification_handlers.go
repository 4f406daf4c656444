package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// VerificationHandlers serves the admin verification queue
type VerificationHandlers struct {
	svc domain.VerificationService
	log logrus.FieldLogger
}

// NewVerificationHandlers creates verification handlers
func NewVerificationHandlers(svc domain.VerificationService, log logrus.FieldLogger) *VerificationHandlers {
	return &VerificationHandlers{svc: svc, log: log.WithField("handler", "verification")}
}

// DecisionBody is the admin decision payload
type DecisionBody struct {
	Action              string               `json:"action" binding:"required,oneof=approve reject"`
	ProviderID          string               `json:"providerId" binding:"required"`
	AdminNotes          string               `json:"adminNotes"`
	VerificationDetails *domain.CheckDetails `json:"verificationDetails"`
}

func (b DecisionBody) toRequest() (domain.DecisionRequest, error) {
	action, err := domain.ParseDecisionAction(b.Action)
	if err != nil {
		return domain.DecisionRequest{}, err
	}
	id, err := strconv.ParseUint(strings.TrimSpace(b.ProviderID), 10, 64)
	if err != nil || id == 0 {
		return domain.DecisionRequest{}, fmt.Errorf("%w: providerId must be a profile id", domain.ErrInvalidInput)
	}
	return domain.DecisionRequest{
		ProfileID: uint(id),
		Action:    action,
		Notes:     b.AdminNotes,
		Details:   b.VerificationDetails,
	}, nil
}

// ListPending returns the pending verification queue as an array
func (h *VerificationHandlers) ListPending(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	profiles, err := h.svc.ListPending(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// Decide applies an approve or reject decision and returns the updated profile
func (h *VerificationHandlers) Decide(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var body DecisionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	req, err := body.toRequest()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	profile, err := h.svc.Decide(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
