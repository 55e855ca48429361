// Package logging builds the process logger. Fields tagged masq:"secret" and the store
// key are redacted before any handler sees them.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/masq"
)

// New returns a text logger at levelStr (DEBUG, INFO, WARN, ERROR; anything else is INFO).
func New(w io.Writer, levelStr string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
		ReplaceAttr: masq.New(
			masq.WithTag("secret"),
			masq.WithFieldName("Key"),
			masq.WithFieldName("PIN"),
			masq.WithFieldName("SessionSecret"),
		),
	})
	return slog.New(handler)
}

func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
