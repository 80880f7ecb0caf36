package bot

import (
	"context"
	"errors"
	"strconv"

	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/wizard"
)

// Transport adapts the telebot API to the narrow messaging interfaces
// the wizard and the order pipeline consume.
type Transport struct {
	bot *telebot.Bot
}

// NewTransport wraps a telebot instance.
func NewTransport(bot *telebot.Bot) *Transport {
	return &Transport{bot: bot}
}

// Send delivers a message and returns its Telegram message id.
func (t *Transport) Send(ctx context.Context, chatID int64, text string, markup *telebot.ReplyMarkup) (int, error) {
	var (
		msg *telebot.Message
		err error
	)

	if markup != nil {
		msg, err = t.bot.Send(telebot.ChatID(chatID), text, markup)
	} else {
		msg, err = t.bot.Send(telebot.ChatID(chatID), text)
	}
	if err != nil {
		return 0, err
	}

	return msg.ID, nil
}

// Edit replaces the text and markup of an existing message. A
// content-identical edit comes back as wizard.ErrNotModified.
func (t *Transport) Edit(ctx context.Context, ref wizard.MessageRef, text string, markup *telebot.ReplyMarkup) error {
	var err error
	if markup != nil {
		_, err = t.bot.Edit(storedMessage(ref), text, markup)
	} else {
		_, err = t.bot.Edit(storedMessage(ref), text)
	}

	if errors.Is(err, telebot.ErrSameMessageContent) {
		return wizard.ErrNotModified
	}

	return err
}

// Delete removes a message from the chat.
func (t *Transport) Delete(ctx context.Context, ref wizard.MessageRef) error {
	return t.bot.Delete(storedMessage(ref))
}

// Notify sends a plain text message, discarding the message id.
func (t *Transport) Notify(ctx context.Context, chatID int64, text string) error {
	_, err := t.Send(ctx, chatID, text, nil)
	return err
}

func storedMessage(ref wizard.MessageRef) telebot.StoredMessage {
	return telebot.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
}
