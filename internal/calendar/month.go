// Package calendar builds the culture calendar views over events listed from the store.
package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"hrops-gateway/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
	// GridDays is six full weeks, enough for any month.
	GridDays = 42
)

var (
	ErrDateRequired  = goerr.New("event date is required")
	ErrTitleRequired = goerr.New("event title is required")
	ErrInvalidDate   = goerr.New("event date must be YYYY-MM-DD")
	ErrInvalidMonth  = goerr.New("month must be YYYY-MM")
)

// Validate is run by creators before submission; the store does not re-validate.
func Validate(ev models.CalendarEvent) error {
	if strings.TrimSpace(ev.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(ev.Date) == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(ev.Date)); err != nil {
		return goerr.Wrap(ErrInvalidDate, "cannot parse date", goerr.V("date", ev.Date))
	}
	return nil
}

// ColoredEvent is an event with its resolved display color.
type ColoredEvent struct {
	models.CalendarEvent
	DisplayColor string `json:"display_color"`
}

// Day is one cell of the month grid.
type Day struct {
	Date    string         `json:"date"`
	InMonth bool           `json:"in_month"`
	Events  []ColoredEvent `json:"events"`
}

// Month is the grid for one calendar month.
type Month struct {
	Month string `json:"month"`
	Days  []Day  `json:"days"`
}

// ParseMonth reads YYYY-MM; an empty value means the month containing now.
func ParseMonth(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidMonth, "cannot parse month", goerr.V("month", value))
	}
	return t, nil
}

// BuildMonth lays out 42 days starting on the Monday on or before the 1st of month.
func BuildMonth(month time.Time, events []models.CalendarEvent) Month {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)

	byDay := GroupByDay(events)

	days := make([]Day, 0, GridDays)
	for i := 0; i < GridDays; i++ {
		d := start.AddDate(0, 0, i)
		key := d.Format(dateLayout)
		evs := byDay[key]
		if evs == nil {
			evs = []ColoredEvent{}
		}
		days = append(days, Day{
			Date:    key,
			InMonth: d.Month() == first.Month(),
			Events:  evs,
		})
	}
	return Month{Month: first.Format(monthLayout), Days: days}
}

// GroupByDay buckets events by their date, each bucket ordered by start time then title.
// Events without a date are dropped.
func GroupByDay(events []models.CalendarEvent) map[string][]ColoredEvent {
	out := make(map[string][]ColoredEvent)
	for _, ev := range events {
		key := strings.TrimSpace(ev.Date)
		if key == "" {
			continue
		}
		if t, ok := models.ParseDate(key); ok {
			key = t.Format(dateLayout)
		}
		out[key] = append(out[key], ColoredEvent{CalendarEvent: ev, DisplayColor: ColorFor(ev.Type, ev.Color)})
	}
	for _, evs := range out {
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].StartTime != evs[j].StartTime {
				// untimed events go last
				if evs[i].StartTime == "" {
					return false
				}
				if evs[j].StartTime == "" {
					return true
				}
				return evs[i].StartTime < evs[j].StartTime
			}
			return evs[i].Title < evs[j].Title
		})
	}
	return out
}
