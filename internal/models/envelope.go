package models

import "encoding/json"

// Error codes carried in Envelope.Error.
const (
	ErrCodeMissingEnv      = "missing_env"
	ErrCodeRouteMissing    = "route_missing"
	ErrCodeIDMissing       = "id_missing"
	ErrCodeInvalidBody     = "invalid_body"
	ErrCodeBodyTooLarge    = "body_too_large"
	ErrCodeForbidden       = "forbidden"
	ErrCodeTransportFailed = "transport_failed"
	ErrCodeNonJSON         = "non_json_from_gs"
	ErrCodeEmptyBody       = "empty_from_gs"
	ErrCodeUpstream        = "upstream_error"
)

// Envelope is the canonical response shape of every proxy endpoint.
type Envelope struct {
	OK     bool            `json:"ok"`
	Data   json.RawMessage `json:"data,omitempty"`
	ID     string          `json:"id,omitempty"`
	Error  string          `json:"error,omitempty"`
	Status int             `json:"status,omitempty"`
	Body   string          `json:"body,omitempty"`
	Detail string          `json:"detail,omitempty"`
}

// Fail builds a failure envelope.
func Fail(code, detail string) Envelope {
	return Envelope{OK: false, Error: code, Detail: detail}
}

// Succeed builds a success envelope around an already-encoded payload.
func Succeed(data json.RawMessage) Envelope {
	return Envelope{OK: true, Data: data}
}
