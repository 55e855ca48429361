package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrops-gateway/internal/auth"
	"hrops-gateway/internal/config"
	"hrops-gateway/internal/models"
	"hrops-gateway/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, storeURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions, err := auth.NewSessions("test-secret", time.Hour)
	require.NoError(t, err)

	cfg := config.Config{
		Store: config.StoreConfig{URL: storeURL, Key: "s3cret", Timeout: time.Second, SupportsDelete: true},
		Admin: config.AdminConfig{PIN: "2468"},
	}
	return SetupRoutes(Deps{Config: cfg, Sessions: sessions})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	r := newRouter(t, "")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok","store_configured":false}`, w.Body.String())
}

func TestPreflight(t *testing.T) {
	r := newRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/gs", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMissingEnvIs500(t *testing.T) {
	r := newRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gs?route=list", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, models.ErrCodeMissingEnv, decode(t, w).Error)
}

func TestCalendarMutationWithoutPIN(t *testing.T) {
	store := testutil.NewFakeStore()
	defer store.Close()
	r := newRouter(t, store.URL)

	body := []byte(`{"title":"Happy Hour","date":"2024-09-27"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/calendar?route=calendar_create", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.False(t, env.OK)
	require.Equal(t, models.ErrCodeForbidden, env.Error)
	require.Equal(t, 0, store.CallCount())
}

func TestCalendarMutationWithPIN(t *testing.T) {
	store := testutil.NewFakeStore()
	defer store.Close()
	store.Reply("calendar_create", testutil.JSONReply(map[string]any{"ok": true, "id": "E-1"}))
	r := newRouter(t, store.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/calendar?route=calendar_create", bytes.NewReader([]byte(`{"title":"Happy Hour","date":"2024-09-27"}`)))
	req.Header.Set("x-admin-pin", "2468")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	env := decode(t, w)
	require.True(t, env.OK)
	require.Equal(t, "E-1", env.ID)
	require.Equal(t, 1, store.CallCount())
}

func TestAdminSessionUnlocksCalendar(t *testing.T) {
	store := testutil.NewFakeStore()
	defer store.Close()
	store.Reply("calendar_delete", testutil.JSONReply(map[string]any{"ok": true}))
	r := newRouter(t, store.URL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/session", bytes.NewReader([]byte(`{"pin":"2468"}`))))
	require.Equal(t, http.StatusOK, w.Code)
	var session struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.True(t, session.OK)

	req := httptest.NewRequest(http.MethodPost, "/api/calendar?route=calendar_delete&id=E-9", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.True(t, decode(t, w).OK)
	calls := store.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "E-9", calls[0].Query.Get("id"))
}

func TestAdminSessionWrongPIN(t *testing.T) {
	r := newRouter(t, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/session", bytes.NewReader([]byte(`{"pin":"1111"}`))))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.ErrCodeForbidden, decode(t, w).Error)
}
