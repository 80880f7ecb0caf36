// Package currency resolves fiat currency codes entered by users.
package currency

import "strings"

// Fiat describes a supported fiat currency.
type Fiat struct {
	Code   string
	Name   string
	Symbol string
}

var fiats = map[string]Fiat{
	"ARS": {Code: "ARS", Name: "Argentine Peso", Symbol: "$"},
	"AUD": {Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	"BOB": {Code: "BOB", Name: "Boliviano", Symbol: "Bs"},
	"BRL": {Code: "BRL", Name: "Brazilian Real", Symbol: "R$"},
	"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	"CHF": {Code: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
	"CLP": {Code: "CLP", Name: "Chilean Peso", Symbol: "$"},
	"COP": {Code: "COP", Name: "Colombian Peso", Symbol: "$"},
	"CRC": {Code: "CRC", Name: "Costa Rican Colon", Symbol: "₡"},
	"CUP": {Code: "CUP", Name: "Cuban Peso", Symbol: "$"},
	"DOP": {Code: "DOP", Name: "Dominican Peso", Symbol: "RD$"},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€"},
	"GBP": {Code: "GBP", Name: "Pound Sterling", Symbol: "£"},
	"GTQ": {Code: "GTQ", Name: "Guatemalan Quetzal", Symbol: "Q"},
	"HNL": {Code: "HNL", Name: "Honduran Lempira", Symbol: "L"},
	"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	"KES": {Code: "KES", Name: "Kenyan Shilling", Symbol: "KSh"},
	"MXN": {Code: "MXN", Name: "Mexican Peso", Symbol: "$"},
	"NGN": {Code: "NGN", Name: "Nigerian Naira", Symbol: "₦"},
	"NIO": {Code: "NIO", Name: "Nicaraguan Cordoba", Symbol: "C$"},
	"PEN": {Code: "PEN", Name: "Peruvian Sol", Symbol: "S/"},
	"PYG": {Code: "PYG", Name: "Paraguayan Guarani", Symbol: "₲"},
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$"},
	"UYU": {Code: "UYU", Name: "Uruguayan Peso", Symbol: "$U"},
	"VES": {Code: "VES", Name: "Venezuelan Bolivar", Symbol: "Bs"},
	"ZAR": {Code: "ZAR", Name: "South African Rand", Symbol: "R"},
}

// Table is a static in-process lookup of supported fiat currencies.
type Table struct{}

// NewTable returns the shared currency table.
func NewTable() Table {
	return Table{}
}

// Resolve returns the canonical currency code for the given user input.
// Lookup is case-insensitive.
func (Table) Resolve(code string) (string, bool) {
	f, ok := fiats[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return "", false
	}
	return f.Code, true
}

// Lookup returns the full fiat record for a code.
func (Table) Lookup(code string) (Fiat, bool) {
	f, ok := fiats[strings.ToUpper(strings.TrimSpace(code))]
	return f, ok
}
