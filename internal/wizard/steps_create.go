package wizard

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/keyboard"
)

// stepCreateInit opens the status summary message (exactly once per
// creation flow) and asks for the template type.
func (e *Engine) stepCreateInit(ctx context.Context, sess *Session, ev Event) error {
	if sess.Draft == nil {
		sess.beginDraft()
	}
	d := sess.Draft

	if d.Status == nil {
		text := StatusText(e.t, d)
		id, err := e.transport.Send(ctx, sess.ChatID, text, nil)
		if err != nil {
			e.leave(sess)
			return err
		}
		d.Status = &MessageRef{ChatID: sess.ChatID, MessageID: id}
		d.StatusText = text
	}

	text, markup := typePrompt(e.t)
	id, err := e.transport.Send(ctx, sess.ChatID, text, markup)
	if err != nil {
		e.leave(sess)
		return err
	}
	d.PromptID = id

	e.advance(sess)
	return nil
}

// stepType accepts only the two type-selecting buttons.
func (e *Engine) stepType(ctx context.Context, sess *Session, ev Event) error {
	d := sess.Draft

	if !ev.isCallback() {
		e.dropInbound(ctx, ev)
		return nil
	}

	value, ok := keyboard.Decode(ev.Callback, cbTypePrefix)
	if !ok {
		return nil
	}
	typ := domain.OrderType(value)
	if !typ.Valid() {
		return nil
	}

	d.Type = typ
	e.clearPrompt(ctx, sess)
	e.sync.Sync(ctx, sess)

	text, markup := currencyPrompt(e.t)
	id, err := e.transport.Send(ctx, sess.ChatID, text, markup)
	if err != nil {
		e.leave(sess)
		return err
	}
	d.PromptID = id

	e.advance(sess)
	return nil
}

// stepCurrency accepts a quick-pick button or a typed code. An unknown
// code re-renders the status with the error and waits for another
// attempt; this is the recovery pattern for every validation step.
func (e *Engine) stepCurrency(ctx context.Context, sess *Session, ev Event) error {
	d := sess.Draft

	var code string
	switch {
	case ev.isCallback():
		value, ok := keyboard.Decode(ev.Callback, cbCurrencyPrefix)
		if !ok {
			return nil
		}
		code = value
	case ev.Text != "":
		code = strings.ToUpper(strings.TrimSpace(ev.Text))
		e.dropInbound(ctx, ev)
	default:
		return nil
	}

	resolved, ok := e.currencies.Resolve(code)
	if !ok {
		d.Err = tr(e.t, "wizard.invalid_currency", "I don't know that currency")
		e.sync.Sync(ctx, sess)
		return nil
	}

	d.Currency = resolved
	d.Err = ""
	e.clearPrompt(ctx, sess)
	e.sync.Sync(ctx, sess)

	id, err := e.transport.Send(ctx, sess.ChatID, amountPrompt(e.t, resolved), nil)
	if err != nil {
		e.leave(sess)
		return err
	}
	d.PromptID = id

	e.advance(sess)
	return nil
}

// stepAmount accepts only free text: an exact amount or a range.
func (e *Engine) stepAmount(ctx context.Context, sess *Session, ev Event) error {
	d := sess.Draft

	if ev.isCallback() || ev.Text == "" {
		return nil
	}
	e.dropInbound(ctx, ev)

	amounts, err := ParseAmountRange(ev.Text)
	if err != nil {
		d.Err = tr(e.t, "wizard.must_be_number_or_range", "The amount must be a number or a range like 100-500")
		e.sync.Sync(ctx, sess)
		return nil
	}

	d.FiatAmount = amounts
	d.Sats = 0 // templates are always market priced
	d.Err = ""
	e.clearPrompt(ctx, sess)
	e.sync.Sync(ctx, sess)

	text, markup := marginPrompt(e.t)
	id, err := e.transport.Send(ctx, sess.ChatID, text, markup)
	if err != nil {
		e.leave(sess)
		return err
	}
	d.PromptID = id

	e.advance(sess)
	return nil
}

// stepMargin accepts a quick-pick percentage button or typed text.
func (e *Engine) stepMargin(ctx context.Context, sess *Session, ev Event) error {
	d := sess.Draft

	var marginText string
	switch {
	case ev.isCallback():
		value, ok := keyboard.Decode(ev.Callback, cbMarginPrefix)
		if !ok {
			return nil
		}
		marginText = value
	case ev.Text != "":
		marginText = ev.Text
		e.dropInbound(ctx, ev)
	default:
		return nil
	}

	margin, err := ParseMargin(marginText)
	if err != nil {
		d.Err = tr(e.t, "wizard.not_number", "That is not a number")
		e.sync.Sync(ctx, sess)
		return nil
	}

	d.PriceMargin = margin
	d.HasMargin = true
	d.Err = ""
	e.clearPrompt(ctx, sess)
	e.sync.Sync(ctx, sess)

	id, err := e.transport.Send(ctx, sess.ChatID, methodPrompt(e.t), nil)
	if err != nil {
		e.leave(sess)
		return err
	}
	d.PromptID = id

	e.advance(sess)
	return nil
}

// stepMethod takes the payment method text, renders the final summary,
// persists the template and jumps back to the refreshed list.
func (e *Engine) stepMethod(ctx context.Context, sess *Session, ev Event) error {
	d := sess.Draft

	if ev.isCallback() || ev.Text == "" {
		return nil
	}
	e.dropInbound(ctx, ev)

	d.Method = strings.TrimSpace(ev.Text)
	e.clearPrompt(ctx, sess)
	e.sync.Sync(ctx, sess)

	tpl := &domain.Template{
		CreatorID:     sess.User.ID,
		Type:          d.Type,
		FiatCode:      d.Currency,
		FiatAmount:    d.FiatAmount,
		PaymentMethod: d.Method,
		PriceFromAPI:  true,
		PriceMargin:   d.PriceMargin,
	}

	if err := e.templates.Create(ctx, tpl); err != nil {
		e.log.Error("failed to save template", slog.Int64("user_id", sess.User.TelegramID), slog.Any("error", err))
		e.sendQuiet(ctx, sess.ChatID, tr(e.t, "publish.generic_error", "Something went wrong, please try again later"), nil)
	} else {
		if d.Status != nil {
			e.deleteQuiet(ctx, *d.Status)
		}
		e.sendQuiet(ctx, sess.ChatID, tr(e.t, "templates.saved", "Template saved ✅"), nil)
	}

	return e.transitionTo(ctx, sess, StateList, ev)
}
