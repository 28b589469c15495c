package entity

import "github.com/shopspring/decimal"

// Monedas aceptadas en la captura de la factura.
const (
	CurrencyMXN = "MXN"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// Currencies lista ordenada de monedas aceptadas.
var Currencies = []string{CurrencyMXN, CurrencyUSD, CurrencyEUR}

// InvoiceData datos capturados de la factura del proveedor.
type InvoiceData struct {
	Folio    string          `json:"folio"`
	Currency string          `json:"moneda"`
	Amount   decimal.Decimal `json:"importe"`
	Company  string          `json:"sociedad"`
}

// DefaultInvoiceData valores iniciales: sin folio, MXN, importe 0, sin sociedad.
func DefaultInvoiceData() InvoiceData {
	return InvoiceData{Currency: CurrencyMXN, Amount: decimal.Zero}
}

// InvoiceDataPatch actualización parcial; los campos nil no se tocan.
type InvoiceDataPatch struct {
	Folio    *string          `json:"folio,omitempty"`
	Currency *string          `json:"moneda,omitempty"`
	Amount   *decimal.Decimal `json:"importe,omitempty"`
	Company  *string          `json:"sociedad,omitempty"`
}

// Apply devuelve una copia de d con los campos presentes en p.
func (p InvoiceDataPatch) Apply(d InvoiceData) InvoiceData {
	if p.Folio != nil {
		d.Folio = *p.Folio
	}
	if p.Currency != nil {
		d.Currency = *p.Currency
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.Company != nil {
		d.Company = *p.Company
	}
	return d
}
