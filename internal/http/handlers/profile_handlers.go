package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// ProfileHandlers serves artisan provider profiles
type ProfileHandlers struct {
	svc domain.ProfileService
	log logrus.FieldLogger
}

// NewProfileHandlers creates profile handlers
func NewProfileHandlers(svc domain.ProfileService, log logrus.FieldLogger) *ProfileHandlers {
	return &ProfileHandlers{svc: svc, log: log.WithField("handler", "profile")}
}

// ProfileBody holds the editable profile fields
type ProfileBody struct {
	BusinessName       string   `json:"business_name" binding:"required,max=200"`
	Description        string   `json:"description" binding:"max=4000"`
	Bio                string   `json:"bio" binding:"max=4000"`
	Specialization     []string `json:"specialization" binding:"max=20"`
	YearsOfExperience  int      `json:"years_of_experience" binding:"min=0"`
	Location           string   `json:"location" binding:"max=200"`
	HourlyRate         float64  `json:"hourly_rate" binding:"min=0"`
	Currency           string   `json:"currency" binding:"omitempty,len=3"`
	AvailabilityStatus string   `json:"availability_status" binding:"omitempty,oneof=available busy unavailable"`
	AvailableDays      []string `json:"available_days" binding:"max=7"`
}

// DocumentBody links a previously uploaded file to the profile
type DocumentBody struct {
	DocumentType string `json:"document_type" binding:"required"`
	StoragePath  string `json:"storage_path" binding:"required"`
	FileName     string `json:"file_name"`
}

// scope resolves the actor and the :user_id path parameter
func (h *ProfileHandlers) scope(c *gin.Context) (domain.Actor, uint, bool) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, h.log, err)
		return domain.Actor{}, 0, false
	}
	userID, err := uintParam(c, "user_id")
	if err != nil {
		respondError(c, h.log, err)
		return domain.Actor{}, 0, false
	}
	return actor, userID, true
}

// Get handles GET /artisans/:user_id/profile
func (h *ProfileHandlers) Get(c *gin.Context) {
	actor, userID, ok := h.scope(c)
	if !ok {
		return
	}
	profile, err := h.svc.GetProfile(c.Request.Context(), actor, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// Update handles PUT /artisans/:user_id/profile
func (h *ProfileHandlers) Update(c *gin.Context) {
	actor, userID, ok := h.scope(c)
	if !ok {
		return
	}
	var body ProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.svc.UpdateProfile(c.Request.Context(), actor, userID, domain.ProfileUpdate{
		BusinessName:       body.BusinessName,
		Description:        body.Description,
		Bio:                body.Bio,
		Specialization:     body.Specialization,
		YearsOfExperience:  body.YearsOfExperience,
		Location:           body.Location,
		HourlyRate:         body.HourlyRate,
		Currency:           body.Currency,
		AvailabilityStatus: body.AvailabilityStatus,
		AvailableDays:      body.AvailableDays,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// Submit handles POST /artisans/:user_id/profile/submit
func (h *ProfileHandlers) Submit(c *gin.Context) {
	actor, userID, ok := h.scope(c)
	if !ok {
		return
	}
	profile, err := h.svc.Resubmit(c.Request.Context(), actor, userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// AttachDocument handles POST /artisans/:user_id/documents
func (h *ProfileHandlers) AttachDocument(c *gin.Context) {
	actor, userID, ok := h.scope(c)
	if !ok {
		return
	}
	var body DocumentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	doc, err := h.svc.AttachDocument(c.Request.Context(), actor, userID, domain.DocumentAttachment{
		DocumentType: body.DocumentType,
		StoragePath:  body.StoragePath,
		FileName:     body.FileName,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": doc})
}

// RemoveDocument handles DELETE /artisans/:user_id/documents/:doc_id
func (h *ProfileHandlers) RemoveDocument(c *gin.Context) {
	actor, userID, ok := h.scope(c)
	if !ok {
		return
	}
	docID, err := uintParam(c, "doc_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.svc.RemoveDocument(c.Request.Context(), actor, userID, docID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
