package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// PolicyHandlers manages casbin policies
type PolicyHandlers struct {
	svc domain.PolicyService
	log logrus.FieldLogger
}

// NewPolicyHandlers creates policy handlers
func NewPolicyHandlers(svc domain.PolicyService, log logrus.FieldLogger) *PolicyHandlers {
	return &PolicyHandlers{svc: svc, log: log.WithField("handler", "policy")}
}

type policyReq struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// List returns every policy rule
func (h *PolicyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetPolicies())
}

// Add installs a policy rule
func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.svc.AddPolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove deletes a policy rule
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if err := c.ShouldBindJSON(&r); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.svc.RemovePolicy(r.Role, r.Resource, r.Action); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
