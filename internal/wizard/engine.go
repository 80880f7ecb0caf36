package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/i18n"
)

// TemplateStore is the persistence contract the wizard consumes.
// ByID returns (nil, nil) when no such template exists.
type TemplateStore interface {
	ByCreator(ctx context.Context, creatorID int64) ([]*domain.Template, error)
	ByID(ctx context.Context, id string) (*domain.Template, error)
	Create(ctx context.Context, tpl *domain.Template) error
	Delete(ctx context.Context, id string) error
}

// CurrencyResolver validates user-entered currency codes.
type CurrencyResolver interface {
	Resolve(code string) (string, bool)
}

// Publisher turns a saved template into a live order. Implementations
// report their own outcome to the user; the returned error is for
// logging only.
type Publisher interface {
	Publish(ctx context.Context, user *domain.User, tpl *domain.Template) error
}

type stepFunc func(ctx context.Context, sess *Session, ev Event) error

// Engine drives the template wizard. Each session's updates are
// serialized on the session mutex; within one update, step handlers may
// re-enter another step via transitionTo.
type Engine struct {
	store      *Store
	templates  TemplateStore
	currencies CurrencyResolver
	publisher  Publisher
	transport  Transport
	sync       *Synchronizer
	t          i18n.Translator
	log        *slog.Logger
	handlers   map[State]stepFunc
}

// NewEngine wires the wizard over its collaborators.
func NewEngine(
	store *Store,
	templates TemplateStore,
	currencies CurrencyResolver,
	publisher Publisher,
	transport Transport,
	t i18n.Translator,
	log *slog.Logger,
) *Engine {
	if log == nil {
		log = slog.Default()
	}

	e := &Engine{
		store:      store,
		templates:  templates,
		currencies: currencies,
		publisher:  publisher,
		transport:  transport,
		sync:       NewSynchronizer(transport, t, log),
		t:          t,
		log:        log,
	}

	// Dispatch is keyed by the state tag, never by step position, so
	// jump targets can be added without renumbering anything.
	e.handlers = map[State]stepFunc{
		StateList:       e.stepList,
		StateListInput:  e.stepListInput,
		StateCreateInit: e.stepCreateInit,
		StateType:       e.stepType,
		StateCurrency:   e.stepCurrency,
		StateAmount:     e.stepAmount,
		StateMargin:     e.stepMargin,
		StateMethod:     e.stepMethod,
	}

	return e
}

// Start opens the wizard for a user at the list view. Re-entry reuses
// the existing session so a still-visible list message is edited in
// place instead of being duplicated.
func (e *Engine) Start(ctx context.Context, user *domain.User, chatID int64) error {
	sess, ok := e.store.Get(user.TelegramID)
	if !ok || sess.ChatID != chatID {
		sess = &Session{User: user, ChatID: chatID}
		e.store.Put(sess)
	} else {
		sess.User = user
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	return e.transitionTo(ctx, sess, StateList, Event{ChatID: chatID})
}

// InSession reports whether the user currently owns an active session.
func (e *Engine) InSession(userID int64) bool {
	_, ok := e.store.Get(userID)
	return ok
}

// HandleUpdate routes one inbound update into the user's active
// session. It reports false when the wizard did not consume the update
// and it should fall through to regular command handling (no session,
// or an entry command passing the guard).
func (e *Engine) HandleUpdate(ctx context.Context, userID int64, ev Event) (bool, error) {
	sess, ok := e.store.Get(userID)
	if !ok {
		return false, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	if ev.isCommand() {
		return e.guardCommand(ctx, sess, ev)
	}

	handler := e.handlers[sess.State]
	if handler == nil {
		e.log.Warn("no handler for wizard state", slog.String("state", string(sess.State)), slog.Int64("user_id", userID))
		return true, nil
	}

	return true, handler(ctx, sess, ev)
}

// transitionTo jumps to an arbitrary step and runs its handler within
// the current turn. This is what lets create, publish, delete
// confirmation, back and the final save all re-enter the list view
// without an extra round trip.
func (e *Engine) transitionTo(ctx context.Context, sess *Session, to State, ev Event) error {
	transitionRecorder(string(sess.State), string(to))
	sess.State = to

	handler := e.handlers[to]
	if handler == nil {
		return fmt.Errorf("wizard: no handler for state %s", to)
	}

	return handler(ctx, sess, ev)
}

// advance moves the cursor one step forward without invoking the next
// handler; the next inbound update is dispatched to it.
func (e *Engine) advance(sess *Session) {
	next, ok := sess.State.next()
	if !ok {
		return
	}

	transitionRecorder(string(sess.State), string(next))
	sess.State = next
}

func (e *Engine) leave(sess *Session) {
	if sess.User != nil {
		e.store.Delete(sess.User.TelegramID)
	}
}

func (e *Engine) sendQuiet(ctx context.Context, chatID int64, text string, markup *telebot.ReplyMarkup) {
	if _, err := e.transport.Send(ctx, chatID, text, markup); err != nil {
		e.log.Warn("failed to send message", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}

func (e *Engine) editQuiet(ctx context.Context, ref MessageRef, text string, markup *telebot.ReplyMarkup) {
	if err := e.transport.Edit(ctx, ref, text, markup); err != nil && !errors.Is(err, ErrNotModified) {
		e.log.Warn("failed to edit message", slog.Int64("chat_id", ref.ChatID), slog.Any("error", err))
	}
}

func (e *Engine) deleteQuiet(ctx context.Context, ref MessageRef) {
	if err := e.transport.Delete(ctx, ref); err != nil {
		e.log.Warn("failed to delete message", slog.Int64("chat_id", ref.ChatID), slog.Any("error", err))
	}
}

// clearPrompt removes the currently open input prompt, if any.
func (e *Engine) clearPrompt(ctx context.Context, sess *Session) {
	d := sess.Draft
	if d == nil || d.PromptID == 0 {
		return
	}

	e.deleteQuiet(ctx, MessageRef{ChatID: sess.ChatID, MessageID: d.PromptID})
	d.PromptID = 0
}

// dropInbound removes a user's free-text message from the transcript.
// Every text received during creation is deleted whether or not it was
// accepted.
func (e *Engine) dropInbound(ctx context.Context, ev Event) {
	if ev.MessageID == 0 {
		return
	}

	e.deleteQuiet(ctx, MessageRef{ChatID: ev.ChatID, MessageID: ev.MessageID})
}
