package upstream

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"hrops-gateway/internal/models"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_PostForwardsBodyAndHeaders(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"id":"T-10"}`))
	}))
	defer srv.Close()

	b := NewBuilder(srv.URL, "s3cret", TaskVocabulary(true))
	out, err := b.Build(Inbound{Method: http.MethodPost, Query: url.Values{"route": {"create"}}, Body: []byte(`{"title":"Benefícios"}`)})
	require.NoError(t, err)

	c := NewClient(NewHTTPClient(time.Second), NewNormalizer(0), discardLogger())
	env := c.Call(context.Background(), out)

	require.True(t, env.OK)
	require.Equal(t, "T-10", env.ID)
	require.JSONEq(t, `{"title":"Benefícios"}`, string(gotBody))
	require.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	require.Equal(t, "no-cache", gotHeader.Get("Cache-Control"))
}

func TestClient_TransportFailureIsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	b := NewBuilder(srv.URL, "s3cret", TaskVocabulary(true))
	out, err := b.Build(Inbound{Method: http.MethodGet, Query: url.Values{}})
	require.NoError(t, err)

	env := NewClient(NewHTTPClient(time.Second), NewNormalizer(0), discardLogger()).Call(context.Background(), out)
	require.False(t, env.OK)
	require.Equal(t, models.ErrCodeTransportFailed, env.Error)
	require.NotContains(t, env.Detail, "s3cret")
}

func TestClient_TimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	b := NewBuilder(srv.URL, "k", TaskVocabulary(true))
	out, err := b.Build(Inbound{Method: http.MethodGet, Query: url.Values{}})
	require.NoError(t, err)

	env := NewClient(NewHTTPClient(50*time.Millisecond), NewNormalizer(0), discardLogger()).Call(context.Background(), out)
	require.False(t, env.OK)
	require.Equal(t, models.ErrCodeTransportFailed, env.Error)
}

func TestClient_LogsNeverCarryTheSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := NewBuilder(srv.URL, "s3cret", TaskVocabulary(true))
	out, err := b.Build(Inbound{Method: http.MethodGet, Query: url.Values{}})
	require.NoError(t, err)

	NewClient(NewHTTPClient(time.Second), NewNormalizer(0), log).Call(context.Background(), out)
	require.Contains(t, buf.String(), "store call failed")
	require.NotContains(t, buf.String(), "s3cret")
}
