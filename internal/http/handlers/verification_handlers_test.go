package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/mocks"
)

func verificationRouter(actor *domain.Actor, svc *mocks.MockVerificationService, log logrus.FieldLogger) *gin.Engine {
	h := NewVerificationHandlers(svc, log)
	return newTestRouter(actor, func(r *gin.Engine) {
		r.GET("/admin/verification", h.ListPending)
		r.POST("/admin/verification", h.Decide)
	})
}

func TestVerificationHandlers_ListPending(t *testing.T) {
	log, _ := newTestLogger()
	svc := &mocks.MockVerificationService{}
	var seen domain.Actor
	svc.ListPendingFunc = func(ctx context.Context, actor domain.Actor) ([]domain.ProviderProfile, error) {
		seen = actor
		return []domain.ProviderProfile{
			{ID: 10, UserID: 3, BusinessName: "Ada Tailoring", Status: domain.StatusPending},
		}, nil
	}

	w := doJSON(t, verificationRouter(&adminActor, svc, log), http.MethodGet, "/admin/verification", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminActor, seen)
	var profiles []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "pending", profiles[0]["verification_status"])
}

func TestVerificationHandlers_ListPending_Forbidden(t *testing.T) {
	log, _ := newTestLogger()
	svc := &mocks.MockVerificationService{
		ListPendingFunc: func(ctx context.Context, actor domain.Actor) ([]domain.ProviderProfile, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	w := doJSON(t, verificationRouter(&artisanActor, svc, log), http.MethodGet, "/admin/verification", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, verificationRouter(nil, svc, log), http.MethodGet, "/admin/verification", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerificationHandlers_Decide(t *testing.T) {
	tru := true
	tests := []struct {
		name           string
		body           interface{}
		decideErr      error
		expectedStatus int
		expectedError  domain.ErrorKind
		validate       func(t *testing.T, req domain.DecisionRequest)
	}{
		{
			name: "approve with details",
			body: map[string]interface{}{
				"action":              "approve",
				"providerId":          "12",
				"adminNotes":          "looks good",
				"verificationDetails": map[string]bool{"bio_verified": true},
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, req domain.DecisionRequest) {
				assert.Equal(t, uint(12), req.ProfileID)
				assert.Equal(t, domain.ActionApprove, req.Action)
				assert.Equal(t, "looks good", req.Notes)
				require.NotNil(t, req.Details)
				assert.Equal(t, &tru, req.Details.BioVerified)
				assert.Nil(t, req.Details.MatricNumberVerified)
			},
		},
		{
			name:           "reject without details",
			body:           map[string]string{"action": "reject", "providerId": "7"},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, req domain.DecisionRequest) {
				assert.Equal(t, domain.ActionReject, req.Action)
				assert.Nil(t, req.Details)
			},
		},
		{
			name:           "unknown action",
			body:           map[string]string{"action": "escalate", "providerId": "7"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  domain.KindInvalidInput,
		},
		{
			name:           "missing provider",
			body:           map[string]string{"action": "approve"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  domain.KindInvalidInput,
		},
		{
			name:           "non-numeric provider",
			body:           map[string]string{"action": "approve", "providerId": "abc"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  domain.KindInvalidInput,
		},
		{
			name:           "profile not found",
			body:           map[string]string{"action": "approve", "providerId": "99"},
			decideErr:      domain.ErrProfileNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  domain.KindNotFound,
		},
		{
			name:           "concurrent decision",
			body:           map[string]string{"action": "approve", "providerId": "12"},
			decideErr:      domain.ErrDecisionInProgress,
			expectedStatus: http.StatusConflict,
			expectedError:  domain.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := newTestLogger()
			var captured domain.DecisionRequest
			called := false
			svc := &mocks.MockVerificationService{
				DecideFunc: func(ctx context.Context, actor domain.Actor, req domain.DecisionRequest) (*domain.ProviderProfile, error) {
					called = true
					captured = req
					if tt.decideErr != nil {
						return nil, tt.decideErr
					}
					status := domain.StatusRejected
					if req.Action == domain.ActionApprove {
						status = domain.StatusApproved
					}
					return &domain.ProviderProfile{ID: req.ProfileID, Status: status, Version: 2}, nil
				},
			}

			w := doJSON(t, verificationRouter(&adminActor, svc, log), http.MethodPost, "/admin/verification", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeObject(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, string(tt.expectedError), body["error"])
				if tt.decideErr == nil {
					assert.False(t, called)
				}
				return
			}
			assert.Equal(t, float64(captured.ProfileID), body["id"])
			if tt.validate != nil {
				tt.validate(t, captured)
			}
		})
	}
}

func TestVerificationHandlers_Decide_PersistenceFailureIsMasked(t *testing.T) {
	log, hook := newTestLogger()
	svc := &mocks.MockVerificationService{
		DecideFunc: func(ctx context.Context, actor domain.Actor, req domain.DecisionRequest) (*domain.ProviderProfile, error) {
			return nil, domain.Persistence("commit decision", fmt.Errorf("connection reset by peer"))
		},
	}

	w := doJSON(t, verificationRouter(&adminActor, svc, log), http.MethodPost, "/admin/verification",
		map[string]string{"action": "approve", "providerId": "12"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeObject(t, w)
	assert.Equal(t, string(domain.KindPersistenceFailure), body["error"])
	assert.Equal(t, "Internal server error", body["message"])
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
