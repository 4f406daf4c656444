package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/http/middleware"
)

var (
	adminActor   = domain.Actor{UserID: 2, Role: domain.RoleAdmin}
	artisanActor = domain.Actor{UserID: 3, Role: domain.RoleArtisan}
)

func newTestLogger() (logrus.FieldLogger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logger, hook
}

// newTestRouter returns an engine that authenticates every request as actor.
// A nil actor leaves the context unauthenticated.
func newTestRouter(actor *domain.Actor, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserID, actor.IDString())
			c.Set(middleware.ContextUserRole, string(actor.Role))
			c.Set(middleware.ContextSessionID, "session-1")
			c.Next()
		})
	}
	register(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
