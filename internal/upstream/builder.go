package upstream

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrRouteMissing = goerr.New("route missing or not accepted")
	ErrIDMissing    = goerr.New("id missing")
	ErrInvalidBody  = goerr.New("request body must be a JSON object")
)

// reserved keys never travel upstream inside the field payload.
var reservedFields = []string{"key", "id", "route"}

// Inbound is what the proxy extracted from the browser request.
type Inbound struct {
	Method string
	Query  url.Values
	Body   []byte
}

// Outbound is the fully-qualified request for the record store.
type Outbound struct {
	Method string
	URL    string
	Body   []byte
	Route  string
	ID     string
	Action Action
}

// RedactedURL is the outbound URL with the secret masked, for logging.
func (o Outbound) RedactedURL() string {
	u, err := url.Parse(o.URL)
	if err != nil {
		return ""
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// payload is the inbound body after envelope detection.
type payload struct {
	route  string
	id     string
	fields map[string]json.RawMessage
}

// Builder turns inbound proxy requests into store requests.
// The base URL and key are fixed for the builder's lifetime.
type Builder struct {
	baseURL string
	key     string
	vocab   Vocabulary
}

func NewBuilder(baseURL, key string, vocab Vocabulary) *Builder {
	return &Builder{baseURL: baseURL, key: key, vocab: vocab}
}

func (b *Builder) Vocabulary() Vocabulary { return b.vocab }

// Build resolves route and id, strips client-supplied secrets and encodes the request.
func (b *Builder) Build(in Inbound) (Outbound, error) {
	target, err := url.Parse(b.baseURL)
	if err != nil {
		return Outbound{}, goerr.Wrap(err, "invalid store url")
	}

	if in.Method != http.MethodPost {
		route := b.vocab.readRoute(in.Query.Get("route"))
		q := target.Query()
		q.Set("route", route)
		if id := strings.TrimSpace(in.Query.Get("id")); id != "" {
			q.Set("id", id)
		}
		q.Set("key", b.key)
		target.RawQuery = q.Encode()
		return Outbound{Method: http.MethodGet, URL: target.String(), Route: route}, nil
	}

	p, err := decodePayload(in.Body)
	if err != nil {
		return Outbound{}, err
	}

	rawRoute := in.Query.Get("route")
	if strings.TrimSpace(rawRoute) == "" {
		rawRoute = p.route
	}
	route, action, ok := b.vocab.writeRoute(rawRoute)
	if !ok {
		return Outbound{}, goerr.Wrap(ErrRouteMissing, "write route rejected", goerr.V("route", rawRoute))
	}

	id := strings.TrimSpace(in.Query.Get("id"))
	if id == "" {
		id = p.id
	}
	if action.NeedsID() && id == "" {
		return Outbound{}, goerr.Wrap(ErrIDMissing, "route needs an id", goerr.V("route", route))
	}

	body, err := json.Marshal(p.fields)
	if err != nil {
		return Outbound{}, goerr.Wrap(err, "failed to encode store body")
	}

	q := target.Query()
	q.Set("route", route)
	if id != "" {
		q.Set("id", id)
	}
	q.Set("key", b.key)
	target.RawQuery = q.Encode()

	return Outbound{
		Method: http.MethodPost,
		URL:    target.String(),
		Body:   body,
		Route:  route,
		ID:     id,
		Action: action,
	}, nil
}

// decodePayload accepts either an envelope {route, id, body:{...}} or a bare field object.
// A body key holding an object marks the envelope shape. In the bare shape route and id are
// read from the fields themselves. Unparseable input is an empty object.
func decodePayload(raw []byte) (payload, error) {
	p := payload{fields: map[string]json.RawMessage{}}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) || bytes.Equal(raw, []byte("null")) {
		return p, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return p, goerr.Wrap(ErrInvalidBody, "body is not an object")
	}

	fields := top
	if inner, ok := top["body"]; ok {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(inner, &obj); err == nil && obj != nil {
			fields = obj
			p.route = rawString(top["route"])
			p.id = rawString(top["id"])
		}
	}
	if p.id == "" {
		p.id = rawString(fields["id"])
	}
	if p.route == "" {
		p.route = rawString(fields["route"])
	}

	for _, k := range reservedFields {
		delete(fields, k)
	}
	p.fields = fields
	return p, nil
}

// rawString reads a JSON string or number as text.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
