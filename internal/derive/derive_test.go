package derive

import (
	"testing"
	"time"

	"hrops-gateway/internal/models"

	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2024, time.September, 20, 17, 45, 0, 0, time.UTC)

func TestDerive_NoDueDate(t *testing.T) {
	for _, p := range []models.TaskPriority{models.PriorityP0, models.PriorityP1, models.PriorityP2, models.PriorityP3} {
		f := Derive(models.Task{Title: "x", Priority: p, Status: models.StatusBlocked}, refNow)
		require.False(t, f.IsOverdue)
		require.Equal(t, 0, f.OverdueDays)
	}
}

func TestDerive_HighestPriorityWithoutDeadline(t *testing.T) {
	f := Derive(models.Task{
		Priority: models.PriorityP0,
		Status:   models.StatusBacklog,
		Impact:   models.ImpactLow,
	}, refNow)

	require.Equal(t, Fields{
		OverdueDays: 0,
		IsOverdue:   false,
		RiskIndex:   models.PriorityP0.Weight(),
		IsCritical:  true,
	}, f)
}

func TestDerive_BlockedOverdueHighImpact(t *testing.T) {
	f := Derive(models.Task{
		Priority: models.PriorityP3,
		Status:   models.StatusBlocked,
		DueDate:  "2024-09-17",
		Impact:   models.ImpactHigh,
	}, refNow)

	require.True(t, f.IsOverdue)
	require.Equal(t, 3, f.OverdueDays)
	require.Equal(t, 3*2+models.PriorityP3.Weight()+BlockedWeight, f.RiskIndex)
	require.True(t, f.IsCritical)
}

func TestDerive_DueTodayIsNotOverdue(t *testing.T) {
	f := Derive(models.Task{Priority: models.PriorityP2, DueDate: "2024-09-20", Impact: models.ImpactHigh}, refNow)
	require.False(t, f.IsOverdue)
	require.Equal(t, 0, f.OverdueDays)
	require.False(t, f.IsCritical)
}

func TestDerive_FutureDeadline(t *testing.T) {
	f := Derive(models.Task{Priority: models.PriorityP1, DueDate: "2024-10-01"}, refNow)
	require.False(t, f.IsOverdue)
	require.Equal(t, 0, f.OverdueDays)
	require.Equal(t, models.PriorityP1.Weight(), f.RiskIndex)
}

func TestDerive_TimeOfDayIgnored(t *testing.T) {
	early := time.Date(2024, time.September, 18, 0, 0, 1, 0, time.UTC)
	late := time.Date(2024, time.September, 18, 23, 59, 59, 0, time.UTC)
	task := models.Task{Priority: models.PriorityP2, DueDate: "2024-09-17T23:00:00Z"}

	require.Equal(t, Derive(task, early), Derive(task, late))
	require.Equal(t, 1, Derive(task, early).OverdueDays)
}

func TestDerive_RiskMonotonicInOverdueDays(t *testing.T) {
	prev := -1
	for days := 0; days <= 30; days++ {
		due := refNow.AddDate(0, 0, -days).Format("2006-01-02")
		f := Derive(models.Task{Priority: models.PriorityP2, Status: models.StatusInProgress, DueDate: due}, refNow)
		require.Equal(t, days, f.OverdueDays)
		require.GreaterOrEqual(t, f.RiskIndex, prev)
		prev = f.RiskIndex
	}
}

func TestDerive_UnparseableDueDateIsAbsent(t *testing.T) {
	f := Derive(models.Task{Priority: models.PriorityP1, DueDate: "amanhã"}, refNow)
	require.False(t, f.IsOverdue)
	require.Equal(t, models.PriorityP1.Weight(), f.RiskIndex)
}

func TestDerive_Deterministic(t *testing.T) {
	task := models.Task{Priority: models.PriorityP1, Status: models.StatusBlocked, DueDate: "2024-08-01", Impact: models.ImpactMedium}
	require.Equal(t, Derive(task, refNow), Derive(task, refNow))
}
