package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrepareForCreate(t *testing.T) {
	task, err := Task{Title: "  Admissão Pedro  ", Priority: PriorityP1}.PrepareForCreate()
	require.NoError(t, err)
	require.Equal(t, "Admissão Pedro", task.Title)
	require.Equal(t, StatusBacklog, task.Status)
	require.Equal(t, PriorityP1, task.Priority)

	task, err = Task{Title: "Folha", Status: StatusBlocked}.PrepareForCreate()
	require.NoError(t, err)
	require.Equal(t, StatusBlocked, task.Status)
}

func TestPrepareForCreate_TitleRequired(t *testing.T) {
	for _, title := range []string{"", "   "} {
		_, err := Task{Title: title}.PrepareForCreate()
		require.ErrorIs(t, err, ErrTaskTitleRequired)
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-05-10", "2024-05-10T03:00:00Z", "10/05/2024", "10 May 2024"} {
		d, ok := ParseDate(in)
		require.True(t, ok, in)
		require.Equal(t, 10, d.Day(), in)
	}
	_, ok := ParseDate("amanhã")
	require.False(t, ok)
}
