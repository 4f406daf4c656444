package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/http/middleware"
)

const internalErrorMessage = "Internal server error"

var kindStatus = map[domain.ErrorKind]int{
	domain.KindUnauthorized:       http.StatusUnauthorized,
	domain.KindForbidden:          http.StatusForbidden,
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindInvalidInput:       http.StatusBadRequest,
	domain.KindConflict:           http.StatusConflict,
	domain.KindUploadRejected:     http.StatusBadRequest,
	domain.KindPersistenceFailure: http.StatusInternalServerError,
	domain.KindInternal:           http.StatusInternalServerError,
}

// StatusFor maps an error to its HTTP status code
func StatusFor(err error) int {
	if status, ok := kindStatus[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": kind, "message": text}. Server-side failures
// are logged in full and reduced to a generic message.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	kind := domain.KindOf(err)
	status := StatusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		message = internalErrorMessage
	}
	c.JSON(status, gin.H{"error": kind, "message": message})
}

// respondBindError reports a malformed or incomplete request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": domain.KindInvalidInput, "message": err.Error()})
}

// actorFrom returns the authenticated actor placed on the context by the auth middleware
func actorFrom(c *gin.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}

// uintParam parses a positive numeric path parameter
func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, name)
	}
	return uint(v), nil
}
