package wizard

import (
	"fmt"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/lnpeers/tplbot/internal/domain"
	"github.com/lnpeers/tplbot/internal/i18n"
	"github.com/lnpeers/tplbot/internal/keyboard"
)

const unsetField = "-"

// quickCurrencies are surfaced as buttons on the currency prompt; any
// other supported code can still be typed in.
var quickCurrencies = []string{"USD", "EUR", "ARS", "VES", "COP", "BRL"}

// quickMargins are the preset percentages on the margin prompt.
var quickMargins = []string{"-5", "-4", "-3", "-2", "-1", "+1", "+2", "+3", "+4", "+5"}

// StatusText renders the in-progress summary for a creation draft. It
// is a pure function of the draft, which makes the synchronizer's
// change detection reliable.
func StatusText(t i18n.Translator, d *Draft) string {
	var b strings.Builder

	b.WriteString(tr(t, "templates.status_header", "Creating order template"))
	b.WriteString("\n\n")

	writeField(&b, tr(t, "templates.status_type", "Type"), string(d.Type))
	writeField(&b, tr(t, "templates.status_currency", "Currency"), d.Currency)
	writeField(&b, tr(t, "templates.status_amount", "Fiat amount"), amountLabel(d.FiatAmount))
	margin := ""
	if d.HasMargin {
		margin = marginLabel(d.PriceMargin)
	}
	writeField(&b, tr(t, "templates.status_margin", "Premium/discount"), margin)
	writeField(&b, tr(t, "templates.status_method", "Payment method"), d.Method)

	if d.Err != "" {
		b.WriteString("\n⚠️ ")
		b.WriteString(d.Err)
	}

	return b.String()
}

// ListData renders the template list and its action keyboard.
func ListData(t i18n.Translator, templates []*domain.Template) (string, *telebot.ReplyMarkup, error) {
	createButton := keyboard.InlineButton{
		Text: tr(t, "templates.create_new", "➕ Create new template"),
		Data: cbCreate,
	}

	if len(templates) == 0 {
		markup, err := keyboard.NewInlineKeyboard().AddRow(createButton).Build()
		return tr(t, "templates.empty", "You have no order templates yet"), markup, err
	}

	var b strings.Builder
	b.WriteString(tr(t, "templates.list_header", "Your order templates"))
	b.WriteString("\n\n")

	kb := keyboard.NewInlineKeyboard()
	for i, tpl := range templates {
		n := strconv.Itoa(i + 1)
		fmt.Fprintf(&b, "%s. %s %s %s - %s\n", n, tpl.TypeLabel(), tpl.FiatCode, tpl.AmountLabel(), tpl.PaymentMethod)

		publishData, err := keyboard.Encode(cbPublishPrefix, tpl.ID)
		if err != nil {
			return "", nil, err
		}
		deleteData, err := keyboard.Encode(cbDeletePrefix, tpl.ID)
		if err != nil {
			return "", nil, err
		}

		kb.AddRow(
			keyboard.InlineButton{Text: "🚀 " + n, Data: publishData},
			keyboard.InlineButton{Text: "🗑 " + n, Data: deleteData},
		)
	}
	kb.AddRow(createButton)

	markup, err := kb.Build()
	return b.String(), markup, err
}

// ConfirmDeleteData renders the yes/no confirmation that replaces the
// list message while a delete is pending.
func ConfirmDeleteData(t i18n.Translator, templateID string) (string, *telebot.ReplyMarkup, error) {
	confirmData, err := keyboard.Encode(cbConfirmDeletePrefix, templateID)
	if err != nil {
		return "", nil, err
	}

	markup, err := keyboard.NewInlineKeyboard().AddRow(
		keyboard.InlineButton{Text: tr(t, "templates.yes", "Yes"), Data: confirmData},
		keyboard.InlineButton{Text: tr(t, "templates.no", "No"), Data: cbBack},
	).Build()

	return tr(t, "templates.confirm_delete", "Delete this template?"), markup, err
}

func typePrompt(t i18n.Translator) (string, *telebot.ReplyMarkup) {
	markup := keyboard.NewInlineKeyboard().AddRow(
		keyboard.InlineButton{Text: tr(t, "wizard.buy", "Buy"), Data: cbTypePrefix + string(domain.OrderTypeBuy)},
		keyboard.InlineButton{Text: tr(t, "wizard.sell", "Sell"), Data: cbTypePrefix + string(domain.OrderTypeSell)},
	).MustBuild()

	return tr(t, "wizard.enter_type", "Is this a template for buying or selling sats?"), markup
}

func currencyPrompt(t i18n.Translator) (string, *telebot.ReplyMarkup) {
	buttons := make([]keyboard.InlineButton, 0, len(quickCurrencies))
	for _, code := range quickCurrencies {
		buttons = append(buttons, keyboard.InlineButton{Text: code, Data: cbCurrencyPrefix + code})
	}

	markup := keyboard.NewInlineKeyboard().AddChunked(3, buttons...).MustBuild()
	return tr(t, "wizard.choose_currency", "Choose a fiat currency or send its 3-letter code"), markup
}

func amountPrompt(t i18n.Translator, currencyCode string) string {
	base := tr(t, "wizard.enter_amount", "Send the fiat amount, either exact (100) or a range (100-500)")
	return fmt.Sprintf("%s (%s)", base, currencyCode)
}

func marginPrompt(t i18n.Translator) (string, *telebot.ReplyMarkup) {
	buttons := make([]keyboard.InlineButton, 0, len(quickMargins))
	for _, m := range quickMargins {
		buttons = append(buttons, keyboard.InlineButton{Text: m + "%", Data: cbMarginPrefix + m})
	}

	markup := keyboard.NewInlineKeyboard().AddChunked(5, buttons...).AddRow(
		keyboard.InlineButton{
			Text: tr(t, "wizard.no_premium_or_discount", "No premium or discount"),
			Data: cbMarginPrefix + "0",
		},
	).MustBuild()

	return tr(t, "wizard.enter_margin", "Pick a premium or discount over the market price, or send a percentage"), markup
}

func methodPrompt(t i18n.Translator) string {
	return tr(t, "wizard.enter_method", "Send the payment method")
}

// tr resolves a localized string, falling back to the built-in English
// text when no catalog is loaded or the key is missing.
func tr(t i18n.Translator, key, fallback string) string {
	if t == nil {
		return fallback
	}

	text := strings.TrimSpace(t.T(key))
	if text == "" || text == key {
		return fallback
	}

	return text
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = unsetField
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func amountLabel(amounts []float64) string {
	parts := make([]string, 0, len(amounts))
	for _, v := range amounts {
		parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return strings.Join(parts, "-")
}

func marginLabel(margin int) string {
	if margin == 0 {
		return "0%"
	}
	return fmt.Sprintf("%+d%%", margin)
}
