package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrops-gateway/internal/auth"
	"hrops-gateway/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func gatedRouter(t *testing.T, pin string) (*gin.Engine, *auth.Sessions, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions, err := auth.NewSessions("test-secret", time.Hour)
	require.NoError(t, err)

	calls := 0
	r := gin.New()
	r.Use(AdminGate(auth.NewPIN(pin), sessions))
	r.POST("/protected", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, models.Envelope{OK: true})
	})
	return r, sessions, &calls
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAdminGate_PIN(t *testing.T) {
	r, _, calls := gatedRouter(t, "2468")

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set(AdminPINHeader, "2468")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode(t, w).OK)
	require.Equal(t, 1, *calls)
}

func TestAdminGate_MissingHeader(t *testing.T) {
	r, _, calls := gatedRouter(t, "2468")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/protected", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.False(t, env.OK)
	require.Equal(t, models.ErrCodeForbidden, env.Error)
	require.Equal(t, 0, *calls)
}

func TestAdminGate_WrongPIN(t *testing.T) {
	r, _, calls := gatedRouter(t, "2468")

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set(AdminPINHeader, "0000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, models.ErrCodeForbidden, decode(t, w).Error)
	require.Equal(t, 0, *calls)
}

func TestAdminGate_SessionToken(t *testing.T) {
	r, sessions, calls := gatedRouter(t, "2468")
	token, _, err := sessions.Issue()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.True(t, decode(t, w).OK)
	require.Equal(t, 1, *calls)
}

func TestAdminGate_UnconfiguredPINRejectsEverything(t *testing.T) {
	r, sessions, calls := gatedRouter(t, "")
	token, _, err := sessions.Issue()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set(AdminPINHeader, "")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, models.ErrCodeForbidden, decode(t, w).Error)
	require.Equal(t, 0, *calls)
}
