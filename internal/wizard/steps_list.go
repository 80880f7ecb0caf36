package wizard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// stepList renders the template list. Entering it always wipes any
// leftover creation fields, so no stale draft data survives a jump
// back from a deeper step.
func (e *Engine) stepList(ctx context.Context, sess *Session, ev Event) error {
	sess.resetDraft()

	templates, err := e.templates.ByCreator(ctx, sess.User.ID)
	if err != nil {
		e.log.Error("failed to load templates", slog.Int64("user_id", sess.User.TelegramID), slog.Any("error", err))
		e.leave(sess)
		return err
	}

	text, markup, err := ListData(e.t, templates)
	if err != nil {
		e.leave(sess)
		return err
	}

	if sess.ListMessageID != 0 {
		editErr := e.transport.Edit(ctx, MessageRef{ChatID: sess.ChatID, MessageID: sess.ListMessageID}, text, markup)
		switch {
		case editErr == nil, errors.Is(editErr, ErrNotModified):
			// an unchanged list is fine, keep the existing message
		default:
			id, sendErr := e.transport.Send(ctx, sess.ChatID, text, markup)
			if sendErr != nil {
				e.leave(sess)
				return sendErr
			}
			sess.ListMessageID = id
		}
	} else {
		id, sendErr := e.transport.Send(ctx, sess.ChatID, text, markup)
		if sendErr != nil {
			e.leave(sess)
			return sendErr
		}
		sess.ListMessageID = id
	}

	e.advance(sess)
	return nil
}

// stepListInput handles the list actions. Delete asks for confirmation
// in place and stays in this state; everything else either starts the
// creation flow or jumps back to the list within the same turn.
func (e *Engine) stepListInput(ctx context.Context, sess *Session, ev Event) error {
	if !ev.isCallback() {
		// stray chatter under the list is removed, not answered
		e.dropInbound(ctx, ev)
		return nil
	}

	data := ev.Callback

	switch {
	case data == cbCreate:
		if sess.ListMessageID != 0 {
			e.deleteQuiet(ctx, MessageRef{ChatID: sess.ChatID, MessageID: sess.ListMessageID})
			sess.ListMessageID = 0
		}
		sess.beginDraft()
		return e.transitionTo(ctx, sess, StateCreateInit, ev)

	case strings.HasPrefix(data, cbConfirmDeletePrefix):
		id := strings.TrimPrefix(data, cbConfirmDeletePrefix)
		if err := e.templates.Delete(ctx, id); err != nil {
			e.log.Error("failed to delete template", slog.String("template_id", id), slog.Any("error", err))
			e.sendQuiet(ctx, sess.ChatID, tr(e.t, "publish.generic_error", "Something went wrong, please try again later"), nil)
		} else {
			e.sendQuiet(ctx, sess.ChatID, tr(e.t, "templates.deleted", "Template deleted 🗑"), nil)
		}
		return e.transitionTo(ctx, sess, StateList, ev)

	case strings.HasPrefix(data, cbDeletePrefix):
		id := strings.TrimPrefix(data, cbDeletePrefix)
		text, markup, err := ConfirmDeleteData(e.t, id)
		if err != nil {
			return err
		}
		if sess.ListMessageID != 0 {
			e.editQuiet(ctx, MessageRef{ChatID: sess.ChatID, MessageID: sess.ListMessageID}, text, markup)
		}
		return nil

	case strings.HasPrefix(data, cbPublishPrefix):
		id := strings.TrimPrefix(data, cbPublishPrefix)
		tpl, err := e.templates.ByID(ctx, id)
		if err != nil {
			e.log.Error("failed to look up template", slog.String("template_id", id), slog.Any("error", err))
		} else if tpl != nil {
			if pubErr := e.publisher.Publish(ctx, sess.User, tpl); pubErr != nil {
				e.log.Error("failed to publish template", slog.String("template_id", id), slog.Any("error", pubErr))
			}
		}
		return e.transitionTo(ctx, sess, StateList, ev)

	case data == cbBack:
		// also cancels a pending delete confirmation
		return e.transitionTo(ctx, sess, StateList, ev)
	}

	return nil
}
