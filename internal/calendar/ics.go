package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"hrops-gateway/internal/models"
)

const (
	icsDateLayout     = "20060102"
	icsDateTimeLayout = "20060102T150405"
	// icsLineOctets is the content line limit, excluding the CRLF.
	icsLineOctets = 75
)

// BuildICS renders all dated events as one iCalendar feed. Times carry no zone in the
// sheet, so timed events are written as floating local times.
func BuildICS(events []models.CalendarEvent, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//HR Ops//Calendario//PT",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	stamp := now.UTC().Format("20060102T150405Z")

	for i, ev := range events {
		day, ok := models.ParseDate(ev.Date)
		if !ok {
			continue
		}
		uid := strings.TrimSpace(ev.ID)
		if uid == "" {
			uid = fmt.Sprintf("export-%d-%d", now.UnixNano(), i)
		}

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+escapeICSText("event-"+uid+"@hrops"),
			"DTSTAMP:"+stamp,
			"SUMMARY:"+escapeICSText(strings.TrimSpace(ev.Title)),
		)

		start, okStart := clockOn(day, ev.StartTime)
		end, okEnd := clockOn(day, ev.EndTime)
		switch {
		case okStart && okEnd && end.After(start):
			lines = append(lines,
				"DTSTART:"+start.Format(icsDateTimeLayout),
				"DTEND:"+end.Format(icsDateTimeLayout),
			)
		case okStart:
			lines = append(lines,
				"DTSTART:"+start.Format(icsDateTimeLayout),
				"DTEND:"+start.Add(time.Hour).Format(icsDateTimeLayout),
			)
		default:
			lines = append(lines,
				"DTSTART;VALUE=DATE:"+day.Format(icsDateLayout),
				"DTEND;VALUE=DATE:"+day.AddDate(0, 0, 1).Format(icsDateLayout),
			)
		}

		if loc := strings.TrimSpace(ev.Location); loc != "" {
			lines = append(lines, "LOCATION:"+escapeICSText(loc))
		}
		if desc := strings.TrimSpace(ev.Description); desc != "" {
			lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
		}
		if typ := strings.TrimSpace(ev.Type); typ != "" {
			lines = append(lines, "CATEGORIES:"+escapeICSText(typ))
		}
		lines = append(lines, "END:VEVENT")
	}

	lines = append(lines, "END:VCALENDAR")

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(foldICSLine(line))
		b.WriteString("\r\n")
	}
	return b.String()
}

// foldICSLine breaks line into pieces of at most 75 octets. Continuation pieces start
// with a single space, which counts toward their limit. Runes are never split.
func foldICSLine(line string) string {
	if len(line) <= icsLineOctets {
		return line
	}
	var b strings.Builder
	limit := icsLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = icsLineOctets - 1
	}
	b.WriteString(line)
	return b.String()
}

func clockOn(day time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
