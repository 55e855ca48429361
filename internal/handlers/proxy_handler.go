package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"hrops-gateway/internal/models"
	"hrops-gateway/internal/realtime"
	"hrops-gateway/internal/upstream"

	"github.com/gin-gonic/gin"
)

// maxInboundBody caps the browser payload read by the proxy.
const maxInboundBody = 1 << 20

// Proxy relays one route vocabulary to the record store.
type Proxy struct {
	builder    *upstream.Builder
	client     *upstream.Client
	hub        *realtime.Hub
	channel    string
	configured bool
	log        *slog.Logger
}

// ProxyOptions wires a Proxy. Configured is false when the store URL or secret is missing.
type ProxyOptions struct {
	Builder    *upstream.Builder
	Client     *upstream.Client
	Hub        *realtime.Hub
	Channel    string
	Configured bool
	Log        *slog.Logger
}

func NewProxy(opts ProxyOptions) *Proxy {
	return &Proxy{
		builder:    opts.Builder,
		client:     opts.Client,
		hub:        opts.Hub,
		channel:    opts.Channel,
		configured: opts.Configured,
		log:        opts.Log,
	}
}

/*
Handle serves GET|POST on a proxy route.
Application failures are answered with HTTP 200 and ok:false so the browser can always
parse the body; only misconfiguration (500) and bad client input (400) use other codes.
*/
func (p *Proxy) Handle(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if !p.configured {
		c.JSON(http.StatusInternalServerError, missingEnv())
		return
	}

	in := upstream.Inbound{
		Method: c.Request.Method,
		Query:  c.Request.URL.Query(),
	}
	if c.Request.Method == http.MethodPost && c.Request.Body != nil {
		// one byte over the cap tells a full body from a cut one
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInboundBody+1))
		if len(body) > maxInboundBody {
			c.JSON(http.StatusRequestEntityTooLarge, models.Fail(models.ErrCodeBodyTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxInboundBody)))
			return
		}
		// an unreadable body is treated like an empty one
		if err == nil {
			in.Body = body
		}
	}

	out, err := p.builder.Build(in)
	if err != nil {
		status, env := buildFailure(err)
		if status >= http.StatusInternalServerError {
			p.log.Error("cannot build store request", "error", err)
		}
		c.JSON(status, env)
		return
	}

	env := p.client.Call(c.Request.Context(), out)
	if env.OK && out.Action != "" {
		p.publish(out, env)
	}
	c.JSON(http.StatusOK, env)
}

// List runs the vocabulary's listing route, as a GET without parameters would.
func (p *Proxy) List(ctx context.Context) (models.Envelope, int) {
	if !p.configured {
		return missingEnv(), http.StatusInternalServerError
	}
	out, err := p.builder.Build(upstream.Inbound{Method: http.MethodGet, Query: url.Values{}})
	if err != nil {
		status, env := buildFailure(err)
		return env, status
	}
	return p.client.Call(ctx, out), http.StatusOK
}

func (p *Proxy) publish(out upstream.Outbound, env models.Envelope) {
	if p.hub == nil {
		return
	}
	id := out.ID
	if id == "" {
		id = env.ID
	}
	p.hub.Publish(p.channel, realtime.Event{
		Type: p.builder.Vocabulary().Name + "_" + string(out.Action),
		ID:   id,
	})
}

func missingEnv() models.Envelope {
	return models.Fail(models.ErrCodeMissingEnv, "GS_WEBAPP_URL/GS_WEBAPP_KEY not configured")
}

func buildFailure(err error) (int, models.Envelope) {
	switch {
	case errors.Is(err, upstream.ErrRouteMissing):
		return http.StatusBadRequest, models.Fail(models.ErrCodeRouteMissing, "")
	case errors.Is(err, upstream.ErrIDMissing):
		return http.StatusBadRequest, models.Fail(models.ErrCodeIDMissing, "")
	case errors.Is(err, upstream.ErrInvalidBody):
		return http.StatusBadRequest, models.Fail(models.ErrCodeInvalidBody, "")
	default:
		return http.StatusInternalServerError, models.Fail(models.ErrCodeMissingEnv, "store url is invalid")
	}
}
