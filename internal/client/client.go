// Package client is the Go consumer of the gateway: it lists records through the proxy,
// keeps the last good list and re-lists after every successful mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/singleflight"

	"hrops-gateway/internal/cache"
	"hrops-gateway/internal/models"
	"hrops-gateway/internal/upstream"
)

// ErrRequestFailed wraps every envelope with ok:false.
var ErrRequestFailed = goerr.New("proxy request failed")

// RequestError carries the envelope fields of a failed call.
type RequestError struct {
	Code   string
	Detail string
	Status int
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return "proxy request failed: " + e.Code + ": " + e.Detail
	}
	return "proxy request failed: " + e.Code
}

func (e *RequestError) Unwrap() error { return ErrRequestFailed }

// Code extracts the envelope error code from err, or "" when err is not a RequestError.
func Code(err error) string {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

const snapshotKey = "list"

// collection is the shared list/mutate loop of Board and Calendar.
type collection[T any] struct {
	endpoint  string
	listRoute string
	http      upstream.Doer
	header    http.Header
	snapshots *cache.Snapshots[string, []T]

	// inflight collapses concurrent re-lists into one request.
	inflight singleflight.Group
}

func newCollection[T any](baseURL, path, listRoute string, doer upstream.Doer) *collection[T] {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &collection[T]{
		endpoint:  strings.TrimRight(baseURL, "/") + path,
		listRoute: listRoute,
		http:      doer,
		header:    http.Header{},
		snapshots: cache.NewSnapshots[string, []T](),
	}
}

// current returns the last good list and whether it was fetched after the last mutation.
func (c *collection[T]) current() ([]T, bool) {
	e, ok := c.snapshots.Get(snapshotKey)
	if !ok {
		return nil, false
	}
	return e.Value, !e.Stale
}

// refresh re-lists; on failure the previous list stays in place.
func (c *collection[T]) refresh(ctx context.Context) ([]T, error) {
	v, err, _ := c.inflight.Do(snapshotKey, func() (any, error) {
		return c.list(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// list fetches and stores the list unless a mutation invalidated it meanwhile. In that
// case the newer snapshot wins and is returned instead.
func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	gen := c.snapshots.Generation(snapshotKey)
	env, err := c.do(ctx, http.MethodGet, url.Values{"route": {c.listRoute}}, nil)
	if err != nil {
		return nil, err
	}

	var items []T
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, goerr.Wrap(err, "list payload is not an array of records", goerr.V("endpoint", c.endpoint))
		}
	}
	if items == nil {
		items = []T{}
	}
	if !c.snapshots.SetIfGeneration(snapshotKey, items, gen) {
		if e, ok := c.snapshots.Get(snapshotKey); ok {
			return e.Value, nil
		}
	}
	return items, nil
}

// mutate posts a write route. A failed write leaves the list untouched; a successful one
// marks it stale and re-lists. The write took effect even when the re-list fails.
func (c *collection[T]) mutate(ctx context.Context, route, id string, fields any) (models.Envelope, error) {
	q := url.Values{"route": {route}}
	if id != "" {
		q.Set("id", id)
	}

	var body []byte
	if fields != nil {
		b, err := json.Marshal(fields)
		if err != nil {
			return models.Envelope{}, goerr.Wrap(err, "failed to encode fields", goerr.V("route", route))
		}
		body = b
	}

	env, err := c.do(ctx, http.MethodPost, q, body)
	if err != nil {
		return env, err
	}

	c.snapshots.Invalidate(snapshotKey)
	// refreshes started before the write must not be joined; their result is dropped by generation
	c.inflight.Forget(snapshotKey)
	if _, err := c.list(ctx); err != nil {
		return env, goerr.Wrap(err, "write applied but re-list failed", goerr.V("route", route))
	}
	return env, nil
}

func (c *collection[T]) do(ctx context.Context, method string, q url.Values, body []byte) (models.Envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+"?"+q.Encode(), reader)
	if err != nil {
		return models.Envelope{}, goerr.Wrap(err, "failed to create request", goerr.V("endpoint", c.endpoint))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Envelope{}, goerr.Wrap(err, "cannot reach gateway", goerr.V("endpoint", c.endpoint))
	}
	defer resp.Body.Close()

	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return models.Envelope{}, goerr.Wrap(err, "gateway reply is not an envelope",
			goerr.V("endpoint", c.endpoint), goerr.V("status", resp.StatusCode))
	}
	if !env.OK {
		return env, &RequestError{Code: env.Error, Detail: env.Detail, Status: resp.StatusCode}
	}
	return env, nil
}
