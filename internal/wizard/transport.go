package wizard

import (
	"context"
	"errors"
	"strings"

	telebot "gopkg.in/telebot.v3"
)

// ErrNotModified is returned by Transport.Edit when the new content is
// identical to what the message already shows. The wizard treats it as
// a no-op, never as a failure.
var ErrNotModified = errors.New("message is not modified")

// Transport is the narrow slice of the chat API the wizard consumes.
// Implementations are expected to translate their transport-specific
// "content unchanged" error into ErrNotModified.
type Transport interface {
	Send(ctx context.Context, chatID int64, text string, markup *telebot.ReplyMarkup) (int, error)
	Edit(ctx context.Context, ref MessageRef, text string, markup *telebot.ReplyMarkup) error
	Delete(ctx context.Context, ref MessageRef) error
}

// Event is one inbound update routed into the wizard: either a button
// callback or a text message, never both.
type Event struct {
	ChatID    int64
	MessageID int
	Text      string
	Callback  string
}

func (e Event) isCallback() bool {
	return e.Callback != ""
}

func (e Event) isCommand() bool {
	return !e.isCallback() && strings.HasPrefix(e.Text, "/")
}
