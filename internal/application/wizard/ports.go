package wizard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// Catalog accesores de datos que consume el asistente.
type Catalog interface {
	ListProviders(ctx context.Context) ([]entity.Provider, error)
	ListPurchaseOrders(ctx context.Context, providerID int64, rfc string) ([]entity.PurchaseOrder, error)
	ListGoodsReceipts(ctx context.Context, poNumber string) ([]entity.GoodsReceipt, error)
}

// Submission todo lo que se envía al registrar la factura.
type Submission struct {
	Supplier      entity.Supplier       `json:"supplier"`
	PurchaseOrder string                `json:"purchase_order"`
	GoodsReceipts []entity.GoodsReceipt `json:"goods_receipts"`
	Invoice       entity.InvoiceData    `json:"invoice"`
	PDF           entity.FileHandle     `json:"pdf"`
	XML           entity.FileHandle     `json:"xml"`
	Total         decimal.Decimal       `json:"total"`
}

// SubmitResult respuesta del registro de la factura.
type SubmitResult struct {
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Submitter registra la factura (backend o simulado).
type Submitter interface {
	Submit(ctx context.Context, s Submission) (*SubmitResult, error)
}
