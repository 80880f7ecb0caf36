package bot

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/bot/handlers"
	"github.com/lnpeers/tplbot/internal/currency"
	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/i18n"
	"github.com/lnpeers/tplbot/internal/user"
	"github.com/lnpeers/tplbot/internal/wizard"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTranslator() i18n.Translator {
	return i18n.NewStatic("en", map[string]string{
		"commands.publish_usage": "Usage: /publishtemplate <number>",
		"templates.not_found":    "No such template",
	}).Translator("en")
}

// fakeTeleContext covers the slice of telebot.Context the command
// handlers touch; everything else panics through the embedded nil.
type fakeTeleContext struct {
	telebot.Context
	sender *telebot.User
	chat   *telebot.Chat
	text   string
	sent   []string
}

func (c *fakeTeleContext) Sender() *telebot.User { return c.sender }

func (c *fakeTeleContext) Chat() *telebot.Chat { return c.chat }

func (c *fakeTeleContext) Text() string { return c.text }

func (c *fakeTeleContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func newFakeTeleContext(text string) *fakeTeleContext {
	return &fakeTeleContext{
		sender: &telebot.User{ID: 100, FirstName: "Ada", Username: "ada"},
		chat:   &telebot.Chat{ID: 555},
		text:   text,
	}
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (r *fakeUserRepo) FindByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	if u, ok := r.users[telegramID]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = int64(len(r.users) + 1)
	r.users[u.TelegramID] = u
	return nil
}

func (r *fakeUserRepo) UpdateLastActive(_ context.Context, _ int64) error { return nil }

type fakeWizardTransport struct {
	nextID int
	sends  []string
}

func (f *fakeWizardTransport) Send(_ context.Context, _ int64, text string, _ *telebot.ReplyMarkup) (int, error) {
	f.nextID++
	f.sends = append(f.sends, text)
	return f.nextID, nil
}

func (f *fakeWizardTransport) Edit(_ context.Context, _ wizard.MessageRef, _ string, _ *telebot.ReplyMarkup) error {
	return nil
}

func (f *fakeWizardTransport) Delete(_ context.Context, _ wizard.MessageRef) error { return nil }

type fakeTemplateStore struct {
	items []*domain.Template
}

func (f *fakeTemplateStore) ByCreator(_ context.Context, creatorID int64) ([]*domain.Template, error) {
	var out []*domain.Template
	for _, tpl := range f.items {
		if tpl.CreatorID == creatorID {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (f *fakeTemplateStore) ByID(_ context.Context, id string) (*domain.Template, error) {
	for _, tpl := range f.items {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return nil, nil
}

func (f *fakeTemplateStore) Create(_ context.Context, tpl *domain.Template) error {
	f.items = append(f.items, tpl)
	return nil
}

func (f *fakeTemplateStore) Delete(_ context.Context, id string) error { return nil }

type fakePublisher struct {
	published []*domain.Template
}

func (f *fakePublisher) Publish(_ context.Context, _ *domain.User, tpl *domain.Template) error {
	f.published = append(f.published, tpl)
	return nil
}

type publishFixture struct {
	users     *user.Service
	engine    *wizard.Engine
	templates *fakeTemplateStore
	publisher *fakePublisher
	transport *fakeWizardTransport
}

func newPublishFixture(items ...*domain.Template) *publishFixture {
	log := testLogger()
	t := testTranslator()
	templates := &fakeTemplateStore{items: items}
	publisher := &fakePublisher{}
	transport := &fakeWizardTransport{}
	engine := wizard.NewEngine(wizard.NewStore(), templates, currency.NewTable(), publisher, transport, t, log)
	users := user.NewService(&fakeUserRepo{users: make(map[int64]*domain.User)}, nil, log)

	return &publishFixture{
		users:     users,
		engine:    engine,
		templates: templates,
		publisher: publisher,
		transport: transport,
	}
}

func (f *publishFixture) handler() handlers.Handler {
	return newPublishTemplateHandler(f.users, f.engine, f.templates, f.publisher, testTranslator(), testLogger())
}

func TestPublishTemplateWithoutArgumentOpensList(t *testing.T) {
	f := newPublishFixture()
	c := newFakeTeleContext("/publishtemplate")

	require.NoError(t, f.handler()(c))

	assert.Empty(t, c.sent)
	require.NotEmpty(t, f.transport.sends, "the template list should be shown")
	assert.True(t, f.engine.InSession(100))
	assert.Empty(t, f.publisher.published)
}

func TestPublishTemplateByIndex(t *testing.T) {
	tpl := &domain.Template{
		ID:            "tpl-a",
		CreatorID:     1,
		Type:          domain.OrderTypeBuy,
		FiatCode:      "USD",
		FiatAmount:    []float64{50},
		PaymentMethod: "cash",
	}
	f := newPublishFixture(tpl)
	c := newFakeTeleContext("/publishtemplate 1")

	require.NoError(t, f.handler()(c))

	require.Len(t, f.publisher.published, 1)
	assert.Same(t, tpl, f.publisher.published[0])
	assert.False(t, f.engine.InSession(100))
}

func TestPublishTemplateInvalidArgument(t *testing.T) {
	f := newPublishFixture()

	for _, text := range []string{"/publishtemplate abc", "/publishtemplate 0"} {
		c := newFakeTeleContext(text)
		require.NoError(t, f.handler()(c))
		require.Len(t, c.sent, 1, text)
		assert.Equal(t, "Usage: /publishtemplate <number>", c.sent[0])
	}

	assert.Empty(t, f.publisher.published)
}

func TestPublishTemplateIndexOutOfRange(t *testing.T) {
	f := newPublishFixture()
	c := newFakeTeleContext("/publishtemplate 3")

	require.NoError(t, f.handler()(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "No such template", c.sent[0])
	assert.Empty(t, f.publisher.published)
}
