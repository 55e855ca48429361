package upstream

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"hrops-gateway/internal/models"
)

// maxReplyBytes caps how much of a store reply is read into memory.
const maxReplyBytes = 8 << 20

// Doer is the part of *http.Client the store client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs store calls and always answers with an envelope.
type Client struct {
	http       Doer
	normalizer *Normalizer
	log        *slog.Logger
}

// NewHTTPClient builds the store HTTP client. Every call is bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func NewClient(doer Doer, normalizer *Normalizer, log *slog.Logger) *Client {
	return &Client{http: doer, normalizer: normalizer, log: log}
}

// Call sends out and normalizes whatever comes back. It never returns an error:
// transport failures become transport_failed envelopes.
func (c *Client) Call(ctx context.Context, out Outbound) models.Envelope {
	start := time.Now()
	env, status := c.call(ctx, out)

	c.log.Debug("store call",
		"method", out.Method,
		"url", out.RedactedURL(),
		"status", status,
		"ok", env.OK,
		"error", env.Error,
		"elapsed", time.Since(start),
	)
	return env
}

func (c *Client) call(ctx context.Context, out Outbound) (models.Envelope, int) {
	var body io.Reader
	if out.Method == http.MethodPost {
		body = bytes.NewReader(out.Body)
	}

	req, err := http.NewRequestWithContext(ctx, out.Method, out.URL, body)
	if err != nil {
		return c.normalizer.Transport(goerr.Wrap(err, "failed to build store request")), 0
	}
	if out.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	res, err := c.http.Do(req)
	if err != nil {
		err = scrubURLError(err, out)
		c.log.Warn("store call failed", "url", out.RedactedURL(), "error", err)
		return c.normalizer.Transport(err), 0
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxReplyBytes))
	if err != nil {
		return c.normalizer.Transport(scrubURLError(err, out)), res.StatusCode
	}

	return c.normalizer.Normalize(Response{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        raw,
	}), res.StatusCode
}
