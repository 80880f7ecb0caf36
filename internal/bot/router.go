package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/bot/handlers"
	"github.com/lnpeers/tplbot/internal/wizard"
)

// Router dispatches incoming updates. An active wizard session gets
// first claim on every update; what it does not consume falls through
// to the command registry.
type Router struct {
	mu             sync.RWMutex
	commands       map[string]handlers.Handler
	engine         *wizard.Engine
	defaultHandler handlers.Handler
	middlewares    []handlers.Middleware
	log            *slog.Logger
}

// NewRouter builds a Router with an empty command registry.
func NewRouter(engine *wizard.Engine, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		commands:    make(map[string]handlers.Handler),
		engine:      engine,
		middlewares: make([]handlers.Middleware, 0),
		log:         log,
	}
}

// RegisterCommand registers a handler for a bot command.
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd] = h
}

// Use appends a middleware to the chain.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// SetDefault sets the fallback handler for unmatched updates.
func (r *Router) SetDefault(h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultHandler = h
}

// Route directs the incoming update through the middleware chain into
// the wizard or the command registry.
func (r *Router) Route(c telebot.Context) error {
	if c == nil {
		return nil
	}

	return r.executeHandler(r.dispatch, c)
}

func (r *Router) dispatch(c telebot.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx := context.Background()

	if cb := c.Callback(); cb != nil {
		return r.dispatchCallback(ctx, c, sender.ID, cb)
	}

	return r.dispatchMessage(ctx, c, sender.ID)
}

func (r *Router) dispatchCallback(ctx context.Context, c telebot.Context, userID int64, cb *telebot.Callback) error {
	// ack immediately so the client stops its spinner regardless of
	// what handling does
	_ = c.Respond(&telebot.CallbackResponse{})

	if cb.Message == nil {
		return nil
	}

	ev := wizard.Event{
		ChatID:    cb.Message.Chat.ID,
		MessageID: cb.Message.ID,
		Callback:  strings.TrimPrefix(cb.Data, "\f"),
	}

	handled, err := r.engine.HandleUpdate(ctx, userID, ev)
	if err != nil {
		return err
	}
	if !handled {
		r.log.Info("callback outside wizard session", slog.Int64("user_id", userID), slog.String("data", ev.Callback))
	}

	return nil
}

func (r *Router) dispatchMessage(ctx context.Context, c telebot.Context, userID int64) error {
	msg := c.Message()
	if msg == nil {
		return nil
	}

	ev := wizard.Event{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      c.Text(),
	}

	handled, err := r.engine.HandleUpdate(ctx, userID, ev)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	if strings.HasPrefix(ev.Text, "/") {
		if handler := r.getCommandHandler(ev.Text); handler != nil {
			return handler(c)
		}
	}

	if handler := r.getDefaultHandler(); handler != nil {
		return handler(c)
	}

	return nil
}

func (r *Router) getCommandHandler(text string) handlers.Handler {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")

	r.mu.RLock()
	handler := r.commands[cmd]
	r.mu.RUnlock()
	return handler
}

func (r *Router) getDefaultHandler() handlers.Handler {
	r.mu.RLock()
	handler := r.defaultHandler
	r.mu.RUnlock()
	return handler
}

func (r *Router) executeHandler(h handlers.Handler, c telebot.Context) error {
	wrapped := r.applyMiddlewares(h)
	if wrapped == nil {
		return nil
	}
	return wrapped(c)
}

// applyMiddlewares wraps the handler with all registered middlewares.
func (r *Router) applyMiddlewares(h handlers.Handler) handlers.Handler {
	if h == nil {
		return nil
	}

	middlewares := r.middlewaresSnapshot()
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}

	return wrapped
}

func (r *Router) middlewaresSnapshot() []handlers.Middleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.middlewares) == 0 {
		return nil
	}

	snapshot := make([]handlers.Middleware, len(r.middlewares))
	copy(snapshot, r.middlewares)
	return snapshot
}
