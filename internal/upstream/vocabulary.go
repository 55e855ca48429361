package upstream

import "strings"

// Vocabulary is the set of store routes one proxy flavor accepts.
type Vocabulary struct {
	// Name labels the proxy flavor in logs and change-feed events.
	Name string
	// ListRoute is used for every read whose route is missing or unknown.
	ListRoute string
	// Aliases rewrite inbound read routes before lookup.
	Aliases map[string]string
	// Writes maps each accepted write route to the action it performs.
	Writes map[string]Action
}

// Action is the kind of mutation a write route performs.
type Action string

const (
	ActionCreate Action = "created"
	ActionUpdate Action = "updated"
	ActionDelete Action = "deleted"
)

// NeedsID reports whether the action targets an existing record.
func (a Action) NeedsID() bool {
	return a == ActionUpdate || a == ActionDelete
}

// TaskVocabulary is the route set of the task-records proxy.
func TaskVocabulary(supportsDelete bool) Vocabulary {
	v := Vocabulary{
		Name:      "task",
		ListRoute: "list",
		Writes: map[string]Action{
			"create": ActionCreate,
			"update": ActionUpdate,
		},
	}
	if supportsDelete {
		v.Writes["delete"] = ActionDelete
	}
	return v
}

// CalendarVocabulary is the route set of the calendar-events proxy.
func CalendarVocabulary(supportsDelete bool) Vocabulary {
	v := Vocabulary{
		Name:      "calendar",
		ListRoute: "calendar_list",
		Aliases:   map[string]string{"list": "calendar_list"},
		Writes: map[string]Action{
			"calendar_create": ActionCreate,
			"calendar_update": ActionUpdate,
		},
	}
	if supportsDelete {
		v.Writes["calendar_delete"] = ActionDelete
	}
	return v
}

// readRoute resolves the route of a GET. Anything that is not the list route falls back to it.
func (v Vocabulary) readRoute(route string) string {
	route = strings.TrimSpace(route)
	if alias, ok := v.Aliases[route]; ok {
		route = alias
	}
	if route != v.ListRoute {
		return v.ListRoute
	}
	return route
}

// writeRoute resolves the route of a POST.
func (v Vocabulary) writeRoute(route string) (string, Action, bool) {
	route = strings.ToLower(strings.TrimSpace(route))
	action, ok := v.Writes[route]
	return route, action, ok
}
