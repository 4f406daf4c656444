package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// ListingHandlers serves the public marketplace listing
type ListingHandlers struct {
	svc domain.ListingService
	log logrus.FieldLogger
}

// NewListingHandlers creates listing handlers
func NewListingHandlers(svc domain.ListingService, log logrus.FieldLogger) *ListingHandlers {
	return &ListingHandlers{svc: svc, log: log.WithField("handler", "listing")}
}

// ListVerified handles GET /artisans/verified
func (h *ListingHandlers) ListVerified(c *gin.Context) {
	query := domain.ListingQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Location: c.Query("location"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(c, h.log, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidInput))
			return
		}
		query.Limit = limit
	}

	listings, err := h.svc.ListVerified(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listings,
		"total":   len(listings),
		"message": fmt.Sprintf("Found %d verified artisans", len(listings)),
	})
}
