package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	errors "github.com/lnpeers/tplbot/internal/errors"
	"github.com/lnpeers/tplbot/internal/i18n"
	"github.com/lnpeers/tplbot/internal/idempotency"
	"github.com/lnpeers/tplbot/internal/middleware"
	"github.com/lnpeers/tplbot/internal/user"
	"github.com/lnpeers/tplbot/internal/wizard"
	"github.com/lnpeers/tplbot/pkg/config"
)

// Bot wraps telebot.Bot with the routing and transport glue the
// application needs for handling updates.
type Bot struct {
	telebot   *telebot.Bot
	transport *Transport
	router    *Router
	log       *slog.Logger
	cfg       config.Config
}

// New builds a telegram bot instance configured according to the application settings.
// Handlers are not live until Setup is called.
func New(cfg config.Config, log *slog.Logger) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen: cfg.Server.Port,
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	return &Bot{
		telebot:   tb,
		transport: NewTransport(tb),
		log:       log,
		cfg:       cfg,
	}, nil
}

// Setup wires the router, middleware chain, and command registry over
// the fully constructed application services.
func (b *Bot) Setup(
	engine *wizard.Engine,
	userService *user.Service,
	templates wizard.TemplateStore,
	publisher wizard.Publisher,
	t i18n.Translator,
	idempotencyManager idempotency.Manager,
	errHandler *errors.Handler,
) {
	router := NewRouter(engine, b.log)

	router.Use(RecoveryMiddleware(b.log, errHandler))
	router.Use(middleware.Idempotency(idempotencyManager, b.log))
	router.Use(ErrorHandlingMiddleware(errHandler))
	router.Use(LoggingMiddleware(b.log))
	router.Use(LastActiveMiddleware(userService))
	router.Use(middleware.Metrics)

	router.RegisterCommand(CommandStart, newStartHandler(userService, t, b.log))
	router.RegisterCommand(wizard.CommandHelp, newHelpHandler(t))
	router.RegisterCommand(wizard.CommandTemplates, newTemplatesHandler(userService, engine, b.log))
	router.RegisterCommand(wizard.CommandPublishTemplate, newPublishTemplateHandler(userService, engine, templates, publisher, t, b.log))

	b.telebot.Handle(telebot.OnText, router.Route)
	b.telebot.Handle(telebot.OnCallback, router.Route)

	b.router = router
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	if b.log != nil {
		b.log.Info("stopping telegram bot...")
	}

	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

// Transport exposes the messaging adapter used by the wizard and the
// order pipeline.
func (b *Bot) Transport() *Transport {
	return b.transport
}
