package calendar

import "strings"

// DefaultColor is used for events whose type is not in the table.
const DefaultColor = "#60a5fa"

// EventType is one legend entry of the calendar.
type EventType struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// Types is the legend, in display order.
var Types = []EventType{
	{Key: "Café com T", Color: "#9b87f5"},
	{Key: "Aniversariantes", Color: "#22d3ee"},
	{Key: "Happy Hour", Color: "#34d399"},
	{Key: "Workshop/Capacitação", Color: "#fbbf24"},
	{Key: "Ação Especial", Color: "#fb7185"},
}

// ColorFor resolves an event color: an explicit override wins over the type table.
func ColorFor(eventType, override string) string {
	if c := strings.TrimSpace(override); c != "" {
		return c
	}
	for _, t := range Types {
		if t.Key == eventType {
			return t.Color
		}
	}
	return DefaultColor
}
