package client

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"hrops-gateway/internal/calendar"
	"hrops-gateway/internal/models"
	"hrops-gateway/internal/upstream"
)

// Calendar talks to the calendar proxy at /api/calendar.
// Mutations need an admin PIN or session token.
type Calendar struct {
	events *collection[models.CalendarEvent]
}

func NewCalendar(baseURL string, doer upstream.Doer) *Calendar {
	return &Calendar{events: newCollection[models.CalendarEvent](baseURL, "/api/calendar", "calendar_list", doer)}
}

// WithAdminPIN sends pin in the x-admin-pin header on every request.
func (c *Calendar) WithAdminPIN(pin string) *Calendar {
	c.events.header.Set("x-admin-pin", pin)
	return c
}

// WithSessionToken sends token as a Bearer credential on every request.
func (c *Calendar) WithSessionToken(token string) *Calendar {
	c.events.header.Set("Authorization", "Bearer "+token)
	return c
}

func (c *Calendar) Events() (events []models.CalendarEvent, fresh bool) {
	return c.events.current()
}

func (c *Calendar) Refresh(ctx context.Context) ([]models.CalendarEvent, error) {
	return c.events.refresh(ctx)
}

// Create validates ev before anything is sent; the store does not re-validate.
func (c *Calendar) Create(ctx context.Context, ev models.CalendarEvent) (string, error) {
	if err := calendar.Validate(ev); err != nil {
		return "", goerr.Wrap(err, "event rejected before submission")
	}
	env, err := c.events.mutate(ctx, "calendar_create", "", ev)
	return env.ID, err
}

func (c *Calendar) Update(ctx context.Context, id string, fields map[string]any) error {
	_, err := c.events.mutate(ctx, "calendar_update", id, fields)
	return err
}

func (c *Calendar) Delete(ctx context.Context, id string) error {
	_, err := c.events.mutate(ctx, "calendar_delete", id, nil)
	return err
}

// Month lays out the cached events on the month grid containing month.
func (c *Calendar) Month(month time.Time) calendar.Month {
	events, _ := c.events.current()
	return calendar.BuildMonth(month, events)
}
