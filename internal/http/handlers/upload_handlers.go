package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// multipartOverhead is the room allowed for multipart framing around the file
const multipartOverhead = 1 << 20

// UploadHandlers serves evidence file uploads
type UploadHandlers struct {
	svc      domain.UploadService
	maxBytes int64
	log      logrus.FieldLogger
}

// NewUploadHandlers creates upload handlers. maxBytes bounds the request body.
func NewUploadHandlers(svc domain.UploadService, maxBytes int64, log logrus.FieldLogger) *UploadHandlers {
	return &UploadHandlers{svc: svc, maxBytes: maxBytes, log: log.WithField("handler", "upload")}
}

// Upload handles multipart POST /upload with a "file" field
func (h *UploadHandlers) Upload(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, h.log, domain.ErrFileTooLarge)
			return
		}
		respondError(c, h.log, fmt.Errorf("%w: multipart field \"file\" is required", domain.ErrInvalidInput))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.log, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	stored, err := h.svc.Upload(c.Request.Context(), actor, domain.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stored})
}

// Delete handles DELETE /upload?fileName=
func (h *UploadHandlers) Delete(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, c.Query("fileName")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "File deleted"}})
}
