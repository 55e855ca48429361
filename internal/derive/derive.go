// Package derive computes the board's derived fields (overdue, risk, critical)
// from a task and an explicit reference time.
package derive

import (
	"time"

	"hrops-gateway/internal/models"
)

// BlockedWeight is added to the risk index while a task sits in the blocked column.
const BlockedWeight = 4

// OverdueDayWeight multiplies each overdue day in the risk index.
const OverdueDayWeight = 2

// Fields are the values computed for one task.
type Fields struct {
	OverdueDays int  `json:"overdueDays"`
	IsOverdue   bool `json:"isOverdue"`
	RiskIndex   int  `json:"riskIndex"`
	IsCritical  bool `json:"isCritical"`
}

// Derive is pure: the same task and now always yield the same Fields.
// Only the calendar dates of now and the due date are compared.
func Derive(task models.Task, now time.Time) Fields {
	var f Fields

	if due, ok := task.Due(); ok {
		days := daysBetween(due, now)
		if days > 0 {
			f.IsOverdue = true
			f.OverdueDays = days
		}
	}

	f.RiskIndex = f.OverdueDays*OverdueDayWeight + task.Priority.Weight()
	if task.Status.IsBlocked() {
		f.RiskIndex += BlockedWeight
	}

	f.IsCritical = task.Priority.IsHighest() || (f.IsOverdue && task.Impact.IsHigh())
	return f
}

// daysBetween counts whole calendar days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
