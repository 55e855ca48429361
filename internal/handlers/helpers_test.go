package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"hrops-gateway/internal/models"
	"hrops-gateway/internal/realtime"
	"hrops-gateway/internal/upstream"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProxy(storeURL string, vocab upstream.Vocabulary, hub *realtime.Hub, channel string) *Proxy {
	log := discardLogger()
	return NewProxy(ProxyOptions{
		Builder:    upstream.NewBuilder(storeURL, "s3cret", vocab),
		Client:     upstream.NewClient(upstream.NewHTTPClient(time.Second), upstream.NewNormalizer(0), log),
		Hub:        hub,
		Channel:    channel,
		Configured: storeURL != "",
		Log:        log,
	})
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
