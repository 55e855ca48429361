package upstream

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"
	"unicode/utf8"

	"hrops-gateway/internal/models"
)

// DefaultDiagnosticLimit bounds body excerpts echoed back in error envelopes.
const DefaultDiagnosticLimit = 400

// Response is the raw store reply as seen by the HTTP client.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Normalizer maps raw store replies onto the canonical envelope.
type Normalizer struct {
	limit int
}

func NewNormalizer(limit int) *Normalizer {
	if limit <= 0 {
		limit = DefaultDiagnosticLimit
	}
	return &Normalizer{limit: limit}
}

// Normalize never fails: JSON is tried first whatever the content type says,
// then the reply is classified as an error with a bounded excerpt.
func (n *Normalizer) Normalize(res Response) models.Envelope {
	body := bytes.TrimSpace(res.Body)

	if len(body) > 0 && json.Valid(body) {
		return n.fromJSON(res.StatusCode, body)
	}

	if len(body) == 0 {
		return models.Envelope{
			Error:  models.ErrCodeEmptyBody,
			Status: res.StatusCode,
		}
	}

	env := models.Envelope{
		Error:  models.ErrCodeNonJSON,
		Status: res.StatusCode,
		Body:   n.Excerpt(string(body)),
	}
	if mt := mediaType(res.ContentType); mt != "" {
		env.Detail = "store replied with " + mt
	}
	return env
}

// Transport converts an HTTP client failure into an envelope.
func (n *Normalizer) Transport(err error) models.Envelope {
	return models.Envelope{
		Error:  models.ErrCodeTransportFailed,
		Detail: n.Excerpt(err.Error()),
	}
}

func (n *Normalizer) fromJSON(status int, body []byte) models.Envelope {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		// arrays and scalars are bare payloads
		return n.bare(status, body)
	}

	okRaw, hasOK := obj["ok"]
	if !hasOK {
		if errRaw, hasErr := obj["error"]; hasErr {
			return n.failure(status, errRaw, obj)
		}
		return n.bare(status, body)
	}

	var ok bool
	if err := json.Unmarshal(okRaw, &ok); err != nil || !ok {
		return n.failure(status, obj["error"], obj)
	}

	return models.Envelope{
		OK:   true,
		Data: obj["data"],
		ID:   rawString(obj["id"]),
	}
}

// bare wraps a payload without an ok flag. Only the HTTP status can mark it as a failure.
func (n *Normalizer) bare(status int, body []byte) models.Envelope {
	if status >= 400 {
		return models.Envelope{
			Error:  models.ErrCodeUpstream,
			Status: status,
			Body:   n.Excerpt(string(body)),
		}
	}
	return models.Envelope{OK: true, Data: json.RawMessage(body)}
}

func (n *Normalizer) failure(status int, errRaw json.RawMessage, obj map[string]json.RawMessage) models.Envelope {
	code := rawString(errRaw)
	if code == "" {
		// error objects or messages that are not short codes
		code = models.ErrCodeUpstream
		if len(errRaw) > 0 && string(errRaw) != "null" {
			return models.Envelope{Error: code, Status: status, Detail: n.Excerpt(string(errRaw))}
		}
	}
	env := models.Envelope{Error: n.Excerpt(code)}
	if detail := rawString(obj["detail"]); detail != "" {
		env.Detail = n.Excerpt(detail)
	} else if msg := rawString(obj["message"]); msg != "" {
		env.Detail = n.Excerpt(msg)
	}
	if status >= 400 {
		env.Status = status
	}
	return env
}

// Excerpt truncates s to the diagnostic limit without splitting a rune.
func (n *Normalizer) Excerpt(s string) string {
	if len(s) <= n.limit {
		return s
	}
	cut := n.limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
