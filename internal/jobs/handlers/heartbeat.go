package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/lnpeers/tplbot/internal/health"
	"github.com/lnpeers/tplbot/internal/jobs"
)

// Notifier delivers a plain text message to a Telegram chat.
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// HeartbeatHandler periodically probes all registered components and posts
// the resulting status report to the operators chat.
type HeartbeatHandler struct {
	checker  *health.Checker
	notifier Notifier
	chatID   int64
	log      *slog.Logger
}

func NewHeartbeatHandler(checker *health.Checker, notifier Notifier, chatID int64, log *slog.Logger) *HeartbeatHandler {
	return &HeartbeatHandler{
		checker:  checker,
		notifier: notifier,
		chatID:   chatID,
		log:      log,
	}
}

func (h *HeartbeatHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload jobs.HeartbeatPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		if h.log != nil {
			h.log.ErrorContext(ctx, "heartbeat: failed to decode payload", slog.String("task_type", t.Type()), slog.String("error", err.Error()))
		}
		return err
	}

	results := h.checker.Check(ctx)

	report, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	if h.log != nil {
		h.log.InfoContext(ctx, "heartbeat",
			slog.Bool("healthy", health.Healthy(results)),
			slog.Time("scheduled_at", payload.ScheduledAt),
		)
	}

	if h.notifier == nil || h.chatID == 0 {
		return nil
	}

	return h.notifier.Notify(ctx, h.chatID, string(report))
}
