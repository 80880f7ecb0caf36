package wizard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lnpeers/tplbot/internal/i18n"
)

// Synchronizer keeps the single status message in step with the
// session's draft. It reads the current fields on every call, so no
// state is captured between invocations.
type Synchronizer struct {
	transport Transport
	t         i18n.Translator
	log       *slog.Logger
}

// NewSynchronizer builds a Synchronizer over the given transport.
func NewSynchronizer(transport Transport, t i18n.Translator, log *slog.Logger) *Synchronizer {
	if log == nil {
		log = slog.Default()
	}

	return &Synchronizer{
		transport: transport,
		t:         t,
		log:       log,
	}
}

// Sync re-renders the status message from the draft. It is a no-op
// when no status message exists, when the rendered text is unchanged,
// or when an edit is already in flight for this session; concurrent
// calls are dropped, not queued; the next call picks up the latest
// state. Edit failures never surface to the user: "not modified" is
// expected, anything else is logged and swallowed.
func (s *Synchronizer) Sync(ctx context.Context, sess *Session) {
	d := sess.Draft
	if d == nil || d.Status == nil {
		return
	}

	if !d.updating.CompareAndSwap(false, true) {
		return
	}
	defer d.updating.Store(false)

	text := StatusText(s.t, d)
	if text == d.StatusText {
		return
	}

	if err := s.transport.Edit(ctx, *d.Status, text, nil); err != nil {
		if !errors.Is(err, ErrNotModified) {
			s.log.Warn("failed to update wizard status message",
				slog.Int64("chat_id", d.Status.ChatID),
				slog.Any("error", err),
			)
		}
		return
	}

	d.StatusText = text
}
