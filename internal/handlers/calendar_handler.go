package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"hrops-gateway/internal/calendar"
	"hrops-gateway/internal/models"

	"github.com/gin-gonic/gin"
)

// CalendarViews serves read-only views over the calendar proxy.
type CalendarViews struct {
	events *Proxy
	now    func() time.Time
}

func NewCalendarViews(events *Proxy, now func() time.Time) *CalendarViews {
	if now == nil {
		now = time.Now
	}
	return &CalendarViews{events: events, now: now}
}

// Month handles GET /api/calendar/month?month=YYYY-MM
func (v *CalendarViews) Month(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	month, err := calendar.ParseMonth(c.Query("month"), v.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(models.ErrCodeInvalidBody, "month must be YYYY-MM"))
		return
	}

	events, env, status := v.list(c)
	if !env.OK {
		c.JSON(status, env)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"data": calendar.BuildMonth(month, events),
	})
}

// Types handles GET /api/calendar/types
func (v *CalendarViews) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"data":    calendar.Types,
		"default": calendar.DefaultColor,
	})
}

// ICS handles GET /api/calendar/ics. Calendar apps cannot read envelopes,
// so failures use 502 here.
func (v *CalendarViews) ICS(c *gin.Context) {
	events, env, status := v.list(c)
	if !env.OK {
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
		c.JSON(status, env)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="calendario.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar.BuildICS(events, v.now())))
}

func (v *CalendarViews) list(c *gin.Context) ([]models.CalendarEvent, models.Envelope, int) {
	env, status := v.events.List(c.Request.Context())
	if !env.OK {
		return nil, env, status
	}

	var events []models.CalendarEvent
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &events); err != nil {
			return nil, models.Fail(ErrCodeUnexpectedPayload, "event list is not an array of records"), http.StatusOK
		}
	}
	return events, env, http.StatusOK
}
