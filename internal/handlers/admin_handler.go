package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"hrops-gateway/internal/auth"
	"hrops-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminSessionRequest is the payload of POST /api/admin/session
type AdminSessionRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// AdminSessionResponse carries a token accepted by the calendar admin gate.
type AdminSessionResponse struct {
	OK        bool      `json:"ok"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Admin exchanges the admin PIN for a session token.
type Admin struct {
	pin      auth.PIN
	sessions *auth.Sessions
	log      *slog.Logger
}

func NewAdmin(pin auth.PIN, sessions *auth.Sessions, log *slog.Logger) *Admin {
	return &Admin{pin: pin, sessions: sessions, log: log}
}

// CreateSession handles POST /api/admin/session
func (a *Admin) CreateSession(c *gin.Context) {
	var req AdminSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(models.ErrCodeInvalidBody, "pin is required"))
		return
	}

	if !a.pin.Match(req.PIN) {
		a.log.Warn("admin session refused", "client_ip", c.ClientIP())
		c.JSON(http.StatusOK, models.Fail(models.ErrCodeForbidden, ""))
		return
	}

	token, exp, err := a.sessions.Issue()
	if err != nil {
		a.log.Error("cannot issue admin session", "error", err)
		c.JSON(http.StatusInternalServerError, models.Fail("session_failed", ""))
		return
	}

	c.JSON(http.StatusOK, AdminSessionResponse{OK: true, Token: token, ExpiresAt: exp})
}
