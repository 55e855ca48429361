package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrops-gateway/internal/auth"
	"hrops-gateway/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func adminRouter(t *testing.T, pin string) (*gin.Engine, *auth.Sessions) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions, err := auth.NewSessions("test-secret", time.Hour)
	require.NoError(t, err)
	r := gin.New()
	r.POST("/api/admin/session", NewAdmin(auth.NewPIN(pin), sessions, discardLogger()).CreateSession)
	return r, sessions
}

func TestAdmin_CreateSession(t *testing.T) {
	r, sessions := adminRouter(t, "2468")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(`{"pin":"2468"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp AdminSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.OK)
	require.NotEmpty(t, resp.Token)

	claims, err := sessions.Validate(resp.Token)
	require.NoError(t, err)
	require.NotNil(t, claims)
}

func TestAdmin_UnconfiguredPINRefusesEverything(t *testing.T) {
	r, _ := adminRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(`{"pin":"anything"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.ErrCodeForbidden, decodeEnvelope(t, w).Error)
}

func TestAdmin_CreateSessionRequiresPIN(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/admin/session", NewAdmin(auth.NewPIN("2468"), nil, discardLogger()).CreateSession)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/session", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
