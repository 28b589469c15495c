package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter da formato de moneda según un locale BCP 47.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter crea un formateador; un locale ilegible cae a es-MX.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("es-MX")
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Locale devuelve la etiqueta en uso.
func (f *Formatter) Locale() string { return f.tag.String() }

// Format da formato a amount en la moneda ISO 4217 code (símbolo + importe con 2 decimales).
// Un código desconocido se representa como "1234.50 XXX".
func (f *Formatter) Format(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + code
	}
	v, _ := amount.Round(2).Float64()
	return f.printer.Sprint(currency.Symbol(unit.Amount(v)))
}
