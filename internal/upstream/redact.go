package upstream

import (
	"errors"
	"net/url"
	"strings"
)

// scrubURLError removes the secret from errors that embed the request URL.
func scrubURLError(err error, out Outbound) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: out.RedactedURL(), Err: ue.Err}
	}
	msg := err.Error()
	if strings.Contains(msg, out.URL) {
		return errors.New(strings.ReplaceAll(msg, out.URL, out.RedactedURL()))
	}
	return err
}
