package models

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var ErrTaskTitleRequired = goerr.New("task title is required")

// TaskStatus is the board column a task renders in.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "Backlog"
	StatusInProgress TaskStatus = "Em andamento"
	StatusAwaiting   TaskStatus = "Aguardando"
	StatusBlocked    TaskStatus = "Bloqueado"
	StatusDone       TaskStatus = "Concluído"
)

// Statuses lists the board columns in display order. The first one is the intake column.
var Statuses = []TaskStatus{
	StatusBacklog,
	StatusInProgress,
	StatusAwaiting,
	StatusBlocked,
	StatusDone,
}

// IsBlocked reports whether the status is the blocked (ICU) column.
// Older sheets used the English label or the ICU nickname.
func (s TaskStatus) IsBlocked() bool {
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case "bloqueado", "blocked", "icu", "uti":
		return true
	}
	return false
}

// TaskPriority is P0 (highest) through P3.
type TaskPriority string

const (
	PriorityP0 TaskPriority = "P0"
	PriorityP1 TaskPriority = "P1"
	PriorityP2 TaskPriority = "P2"
	PriorityP3 TaskPriority = "P3"
)

// HighestPriority carries the largest risk weight.
const HighestPriority = PriorityP0

var priorityWeights = map[TaskPriority]int{
	PriorityP0: 8,
	PriorityP1: 5,
	PriorityP2: 3,
	PriorityP3: 1,
}

// Weight returns the risk weight of the priority; unknown priorities weigh 0.
func (p TaskPriority) Weight() int {
	return priorityWeights[TaskPriority(strings.ToUpper(strings.TrimSpace(string(p))))]
}

// IsHighest reports whether p is the top priority.
func (p TaskPriority) IsHighest() bool {
	return TaskPriority(strings.ToUpper(strings.TrimSpace(string(p)))) == HighestPriority
}

// TaskImpact is the business impact used by the critical flag.
type TaskImpact string

const (
	ImpactHigh   TaskImpact = "Alta"
	ImpactMedium TaskImpact = "Média"
	ImpactLow    TaskImpact = "Baixa"
)

func (i TaskImpact) IsHigh() bool {
	switch strings.ToLower(strings.TrimSpace(string(i))) {
	case "alta", "high":
		return true
	}
	return false
}

// Task is one unit of HR-ops work as stored in the spreadsheet.
type Task struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Status      TaskStatus   `json:"status,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`
	Impact      TaskImpact   `json:"impact,omitempty"`
	Description string       `json:"description,omitempty"`
	Owner       string       `json:"owner,omitempty"`
	Requester   string       `json:"requester,omitempty"`
	Area        string       `json:"area,omitempty"`
	Company     string       `json:"company,omitempty"`
	Labels      string       `json:"labels,omitempty"`
	Comments    string       `json:"comments,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
	UpdatedAt   string       `json:"updated_at,omitempty"`
}

// Due returns the parsed due date, or false when the task has no usable deadline.
func (t Task) Due() (time.Time, bool) {
	return ParseDate(t.DueDate)
}

// PrepareForCreate applies the creation rules the store does not enforce: the title is
// required and an empty status lands in the intake column.
func (t Task) PrepareForCreate() (Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return Task{}, ErrTaskTitleRequired
	}
	if strings.TrimSpace(string(t.Status)) == "" {
		t.Status = Statuses[0]
	}
	return t, nil
}

// ParseDate accepts the date layouts the sheet has been seen to emit.
func ParseDate(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		"2006-01-02", // ISO date
		time.RFC3339, // Apps Script serializes Date cells this way
		"02/01/2006", // pt-BR
		"2 Jan 2006",
		"02 Jan 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
