package entity

import "github.com/shopspring/decimal"

// PurchaseOrder orden de compra del catálogo SAP. Los nombres JSON siguen al backend.
type PurchaseOrder struct {
	DocumentNumber   string          `json:"DocumentoCompras" validate:"required"`
	PaymentCondition string          `json:"CondPago"`
	CompanyCode      string          `json:"Sociedad"`
	Annual           *int64          `json:"Isanual"`
	Amount           decimal.Decimal `json:"Monto" validate:"gte=0"`
	Currency         string          `json:"Moneda"`
	CreatedAt        string          `json:"FechaCreacion"`
	ProviderNumber   string          `json:"NoProveedor"`
	RFC              string          `json:"Rfc" validate:"required"`
}
