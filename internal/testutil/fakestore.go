// Package testutil provides a stand-in for the spreadsheet-backed record store.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
)

// StoreCall is one request the fake store received.
type StoreCall struct {
	Method string
	Query  url.Values
	Body   []byte
}

// Reply is what the fake store answers with.
type Reply struct {
	Status      int
	ContentType string
	Body        string
}

// JSONReply encodes v as a 200 application/json reply.
func JSONReply(v any) Reply {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Reply{Status: http.StatusOK, ContentType: "application/json", Body: string(b)}
}

// FakeStore records every call and answers per route.
type FakeStore struct {
	*httptest.Server

	mu      sync.Mutex
	calls   []StoreCall
	replies map[string]Reply
	def     Reply
}

// NewFakeStore starts a store whose default reply is {"ok":true,"data":[]}.
func NewFakeStore() *FakeStore {
	f := &FakeStore{
		replies: make(map[string]Reply),
		def:     JSONReply(map[string]any{"ok": true, "data": []any{}}),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

// Reply sets the answer for a route.
func (f *FakeStore) Reply(route string, r Reply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[route] = r
}

// Calls returns a copy of the recorded calls.
func (f *FakeStore) Calls() []StoreCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]StoreCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount is the number of requests received so far.
func (f *FakeStore) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *FakeStore) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, StoreCall{Method: r.Method, Query: r.URL.Query(), Body: body})
	reply, ok := f.replies[r.URL.Query().Get("route")]
	if !ok {
		reply = f.def
	}
	f.mu.Unlock()

	if reply.ContentType != "" {
		w.Header().Set("Content-Type", reply.ContentType)
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply.Body)
}
