package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/bot/handlers"
	"github.com/lnpeers/tplbot/internal/idempotency"
)

const dedupeWindow = 24 * time.Hour

// Idempotency suppresses handlers for Telegram updates that were already seen.
// Telegram redelivers updates after network hiccups; without this guard a
// redelivered callback would re-run its side effects.
func Idempotency(manager idempotency.Manager, log *slog.Logger) handlers.Middleware {
	if manager == nil {
		return func(next handlers.Handler) handlers.Handler {
			return next
		}
	}
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			key := extractIdempotencyKey(c)
			if key == "" {
				return next(c)
			}

			first, err := manager.FirstSeen(context.Background(), key, dedupeWindow)
			if err != nil {
				// dedupe store being down must not drop user traffic
				log.Error("idempotency check failed", slog.String("key", key), slog.Any("error", err))
				return next(c)
			}

			if !first {
				log.Info("duplicate update suppressed", slog.String("key", key))
				return nil
			}

			return next(c)
		}
	}
}

func extractIdempotencyKey(c telebot.Context) string {
	if c == nil {
		return ""
	}

	if cb := c.Callback(); cb != nil {
		if cb.ID != "" {
			return fmt.Sprintf("cb:%s", cb.ID)
		}

		if cb.Message != nil {
			chatID := int64(0)
			if cb.Message.Chat != nil {
				chatID = cb.Message.Chat.ID
			}
			return fmt.Sprintf("cb-msg:%d:%d", chatID, cb.Message.ID)
		}
	}

	if msg := c.Message(); msg != nil {
		chatID := int64(0)
		if msg.Chat != nil {
			chatID = msg.Chat.ID
		}
		if msg.ID != 0 {
			return fmt.Sprintf("msg:%d:%d", chatID, msg.ID)
		}
	}

	return ""
}
