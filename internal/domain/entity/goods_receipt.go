package entity

import "github.com/shopspring/decimal"

// GoodsReceiptStatus estado de facturación de una entrada de mercancía.
type GoodsReceiptStatus string

const (
	GRStatusPending  GoodsReceiptStatus = "Pendiente de Factura"
	GRStatusInvoiced GoodsReceiptStatus = "Facturado"
)

// IsValid indica si el estado es uno de los conocidos.
func (s GoodsReceiptStatus) IsValid() bool {
	return s == GRStatusPending || s == GRStatusInvoiced
}

// GoodsReceipt entrada de mercancía asociada a una orden de compra.
type GoodsReceipt struct {
	ID        string             `json:"id" validate:"required"`
	Number    string             `json:"number" validate:"required"`
	Material  string             `json:"material"`
	Tax       decimal.Decimal    `json:"iva" validate:"gte=0"`
	Date      string             `json:"date"`
	Amount    decimal.Decimal    `json:"amount" validate:"gte=0"`
	ItemCount int                `json:"itemCount" validate:"gte=1"`
	Status    GoodsReceiptStatus `json:"status" validate:"grstatus"`
	PONumber  string             `json:"poNumber"`
}

// IsInvoiced indica si la entrada ya fue facturada y no puede seleccionarse.
func (g GoodsReceipt) IsInvoiced() bool { return g.Status == GRStatusInvoiced }
