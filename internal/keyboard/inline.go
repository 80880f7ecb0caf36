// Package keyboard builds inline keyboards and callback payloads.
package keyboard

import (
	telebot "gopkg.in/telebot.v3"
)

// InlineButton is a lightweight inline button definition accumulated by
// the builder before rendering telebot markup.
type InlineButton struct {
	Text string
	Data string // full callback payload, e.g. "tpl_margin_+3"
}

// InlineKeyboardBuilder accumulates rows of InlineButton definitions
// before rendering telebot markup.
type InlineKeyboardBuilder struct {
	rows [][]InlineButton
}

// NewInlineKeyboard creates an empty builder.
func NewInlineKeyboard() *InlineKeyboardBuilder {
	return &InlineKeyboardBuilder{rows: make([][]InlineButton, 0)}
}

// AddRow appends a new row of buttons. Empty rows are dropped.
func (b *InlineKeyboardBuilder) AddRow(buttons ...InlineButton) *InlineKeyboardBuilder {
	if len(buttons) == 0 {
		return b
	}

	row := make([]InlineButton, len(buttons))
	copy(row, buttons)
	b.rows = append(b.rows, row)
	return b
}

// AddChunked appends the buttons split into rows of at most perRow.
func (b *InlineKeyboardBuilder) AddChunked(perRow int, buttons ...InlineButton) *InlineKeyboardBuilder {
	if perRow < 1 {
		perRow = 1
	}

	for start := 0; start < len(buttons); start += perRow {
		end := start + perRow
		if end > len(buttons) {
			end = len(buttons)
		}
		b.AddRow(buttons[start:end]...)
	}

	return b
}

// Build finalizes the inline markup, validating every callback payload
// against the Telegram size limit.
func (b *InlineKeyboardBuilder) Build() (*telebot.ReplyMarkup, error) {
	inline := make([][]telebot.InlineButton, len(b.rows))
	for i, row := range b.rows {
		inline[i] = make([]telebot.InlineButton, len(row))
		for j, btn := range row {
			if err := ValidatePayload(btn.Data); err != nil {
				return nil, err
			}
			inline[i][j] = telebot.InlineButton{
				Text: btn.Text,
				Data: btn.Data,
			}
		}
	}

	return &telebot.ReplyMarkup{InlineKeyboard: inline}, nil
}

// MustBuild is Build for keyboards assembled from compile-time constants.
// It panics on payload overflow.
func (b *InlineKeyboardBuilder) MustBuild() *telebot.ReplyMarkup {
	markup, err := b.Build()
	if err != nil {
		panic(err)
	}
	return markup
}
