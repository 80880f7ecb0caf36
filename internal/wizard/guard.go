package wizard

import (
	"context"
	"strings"
)

// Commands honored while the wizard owns the conversation.
const (
	CommandExit            = "/exit"
	CommandHelp            = "/help"
	CommandTemplates       = "/templates"
	CommandPublishTemplate = "/publishtemplate"
)

// guardCommand filters slash commands ahead of the active step. /exit
// tears the session down, /help replies with usage, the two entry
// commands pass through so their bot-level handlers can re-enter the
// flow instead of looping, and every other command is removed from the
// chat with a short notice. The step machine is never reached for a
// handled command.
func (e *Engine) guardCommand(ctx context.Context, sess *Session, ev Event) (bool, error) {
	cmd := ev.Text
	if i := strings.IndexAny(cmd, " @"); i >= 0 {
		cmd = cmd[:i]
	}

	switch cmd {
	case CommandExit:
		e.teardown(ctx, sess)
		e.leave(sess)
		e.sendQuiet(ctx, sess.ChatID, tr(e.t, "wizard.exit", "You left the templates wizard"), nil)
		return true, nil

	case CommandHelp:
		e.sendQuiet(ctx, sess.ChatID, tr(e.t, "wizard.help", "Send field values as asked, or use /exit to leave the wizard"), nil)
		return true, nil

	case CommandTemplates, CommandPublishTemplate:
		return false, nil

	default:
		e.sendQuiet(ctx, sess.ChatID, tr(e.t, "wizard.help", "Send field values as asked, or use /exit to leave the wizard"), nil)
		e.dropInbound(ctx, ev)
		return true, nil
	}
}

// teardown removes every message the wizard still owns, best-effort.
func (e *Engine) teardown(ctx context.Context, sess *Session) {
	if d := sess.Draft; d != nil {
		if d.Status != nil {
			e.deleteQuiet(ctx, *d.Status)
		}
		if d.PromptID != 0 {
			e.deleteQuiet(ctx, MessageRef{ChatID: sess.ChatID, MessageID: d.PromptID})
		}
	}

	if sess.ListMessageID != 0 {
		e.deleteQuiet(ctx, MessageRef{ChatID: sess.ChatID, MessageID: sess.ListMessageID})
	}
}
