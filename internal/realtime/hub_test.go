package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu   sync.Mutex
	msgs []string
	fail bool
}

func (f *fakeClient) Send(message []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false
	}
	f.msgs = append(f.msgs, string(message))
	return true
}

func (f *fakeClient) Close() {}

func TestHub_PublishReachesChannelOnly(t *testing.T) {
	h := NewHub()
	tasks := &fakeClient{}
	cal := &fakeClient{}
	h.Register(ChannelTasks, tasks)
	h.Register(ChannelCalendar, cal)

	n := h.Publish(ChannelTasks, Event{Type: "task_updated", ID: "T-1"})
	require.Equal(t, 1, n)
	require.Equal(t, []string{`{"type":"task_updated","id":"T-1","version":1}`}, tasks.msgs)
	require.Empty(t, cal.msgs)
}

func TestHub_UnregisterDropsEmptyChannel(t *testing.T) {
	h := NewHub()
	c := &fakeClient{}
	h.Register(ChannelCalendar, c)
	require.Equal(t, 1, h.Subscribers(ChannelCalendar))

	h.Unregister(ChannelCalendar, c)
	require.Equal(t, 0, h.Subscribers(ChannelCalendar))
	require.Equal(t, 0, h.Publish(ChannelCalendar, Event{Type: "calendar_created"}))
}

func TestHub_FailedClientNotCounted(t *testing.T) {
	h := NewHub()
	h.Register(ChannelTasks, &fakeClient{fail: true})
	h.Register(ChannelTasks, &fakeClient{})
	require.Equal(t, 1, h.Publish(ChannelTasks, Event{Type: "task_deleted", ID: "T-2"}))
}

func TestValidChannel(t *testing.T) {
	require.True(t, ValidChannel("tasks"))
	require.True(t, ValidChannel("calendar"))
	require.False(t, ValidChannel("admin"))
}
