package schema

import (
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// Nombres de campo del formulario de la factura.
const (
	FieldFolio    = "folio"
	FieldCurrency = "moneda"
	FieldAmount   = "importe"
	FieldCompany  = "sociedad"
)

type invoiceRule struct {
	field   string
	tag     string
	message string
	value   func(entity.InvoiceData) any
}

// invoiceRules en el orden en que se muestran los errores.
var invoiceRules = []invoiceRule{
	{FieldFolio, "required", "El folio es requerido", func(d entity.InvoiceData) any { return d.Folio }},
	{FieldCurrency, "oneof=MXN USD EUR", "Moneda no válida: se permite MXN, USD o EUR", func(d entity.InvoiceData) any { return d.Currency }},
	{FieldAmount, "gte=0.01", "El importe debe ser mayor a 0", func(d entity.InvoiceData) any {
		f, _ := d.Amount.Float64()
		return f
	}},
	{FieldCompany, "required", "La sociedad es requerida", func(d entity.InvoiceData) any { return d.Company }},
}

// ValidateInvoiceField valida un único campo. Devuelve nil si es válido.
// Un nombre de campo desconocido no produce error.
func ValidateInvoiceField(d entity.InvoiceData, field string) *Issue {
	for _, r := range invoiceRules {
		if r.field != field {
			continue
		}
		if err := validate.Var(r.value(d), r.tag); err != nil {
			return &Issue{Path: r.field, Message: r.message}
		}
		return nil
	}
	return nil
}

// ValidateInvoiceData valida todos los campos de la factura.
func ValidateInvoiceData(d entity.InvoiceData) error {
	out := &Error{Entity: "invoice_data"}
	for _, r := range invoiceRules {
		if is := ValidateInvoiceField(d, r.field); is != nil {
			out.Issues = append(out.Issues, *is)
		}
	}
	if len(out.Issues) == 0 {
		return nil
	}
	return out
}

// InvoiceErrors mapa campo -> mensaje; vacío si la factura es válida.
func InvoiceErrors(d entity.InvoiceData) map[string]string {
	if se, ok := AsError(ValidateInvoiceData(d)); ok {
		return se.Fields()
	}
	return map[string]string{}
}
