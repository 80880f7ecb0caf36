package middleware

import (
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/bot/handlers"
	"github.com/lnpeers/tplbot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them to Prometheus.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		action := extractActionName(c)
		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordUpdate(action, status, time.Since(start))

		return err
	}
}

// extractActionName reduces a raw update to a low-cardinality metric label.
// Callback payloads keep only their prefix, commands keep only the first token.
func extractActionName(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil && cb.Data != "" {
		data := strings.TrimPrefix(cb.Data, "\f")
		if idx := strings.LastIndexByte(data, '_'); idx > 0 {
			return data[:idx+1]
		}
		return data
	}

	text := c.Text()
	if strings.HasPrefix(text, "/") {
		cmd, _, _ := strings.Cut(text, " ")
		cmd, _, _ = strings.Cut(cmd, "@")
		return cmd
	}

	if text != "" {
		return "text"
	}

	return "unknown"
}
