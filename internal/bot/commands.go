package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/bot/handlers"
	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/i18n"
	"github.com/lnpeers/tplbot/internal/user"
	"github.com/lnpeers/tplbot/internal/wizard"
)

const CommandStart = "/start"

func newStartHandler(users *user.Service, t i18n.Translator, log *slog.Logger) handlers.Handler {
	return func(c telebot.Context) error {
		if _, err := ensureSender(c, users); err != nil {
			return err
		}

		return c.Send(t.T("commands.start"))
	}
}

func newHelpHandler(t i18n.Translator) handlers.Handler {
	return func(c telebot.Context) error {
		return c.Send(t.T("wizard.help"))
	}
}

func newTemplatesHandler(users *user.Service, engine *wizard.Engine, log *slog.Logger) handlers.Handler {
	return func(c telebot.Context) error {
		u, err := ensureSender(c, users)
		if err != nil {
			return err
		}

		return engine.Start(context.Background(), u, c.Chat().ID)
	}
}

// newPublishTemplateHandler publishes the Nth template from the user's
// list directly, e.g. "/publishtemplate 2". Without an argument it
// opens the template list, same as /templates.
func newPublishTemplateHandler(
	users *user.Service,
	engine *wizard.Engine,
	templates wizard.TemplateStore,
	publisher wizard.Publisher,
	t i18n.Translator,
	log *slog.Logger,
) handlers.Handler {
	return func(c telebot.Context) error {
		u, err := ensureSender(c, users)
		if err != nil {
			return err
		}

		fields := strings.Fields(c.Text())
		if len(fields) < 2 {
			return engine.Start(context.Background(), u, c.Chat().ID)
		}

		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return c.Send(t.T("commands.publish_usage"))
		}

		ctx := context.Background()

		list, err := templates.ByCreator(ctx, u.ID)
		if err != nil {
			return err
		}
		if n > len(list) {
			return c.Send(t.T("templates.not_found"))
		}

		if err := publisher.Publish(ctx, u, list[n-1]); err != nil {
			log.Error("publish by index failed",
				slog.Int64("user_id", u.TelegramID),
				slog.Int("index", n),
				slog.Any("error", err),
			)
		}

		return nil
	}
}

func ensureSender(c telebot.Context, users *user.Service) (*domain.User, error) {
	sender := c.Sender()
	return users.Ensure(context.Background(), sender.ID, sender.FirstName, sender.LastName, sender.Username)
}
