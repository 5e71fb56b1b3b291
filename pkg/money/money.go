// Package money formatea montos para documentos (PDF, XLSX) con separadores según idioma.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea con 2 decimales y separador de miles del idioma.
type Formatter struct {
	p *message.Printer
}

// NewFormatter usa el tag BCP 47 dado ("en", "es", "fr"...); si no se reconoce, inglés.
func NewFormatter(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Amount "1,731,875.00" (en) / "1.731.875,00" (es).
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.p.Sprintf("%v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// WithCurrency "RWF 1,731,875.00".
func (f *Formatter) WithCurrency(d decimal.Decimal, currency string) string {
	if currency == "" {
		return f.Amount(d)
	}
	return currency + " " + f.Amount(d)
}
