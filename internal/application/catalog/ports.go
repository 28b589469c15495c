package catalog

import (
	"context"

	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// Source origen de los datos del catálogo (backend Reciboo o datos de demostración).
// Las implementaciones devuelven registros ya validados.
type Source interface {
	Providers(ctx context.Context) ([]entity.Provider, error)
	PurchaseOrders(ctx context.Context, providerID int64, rfc string) ([]entity.PurchaseOrder, error)
	GoodsReceipts(ctx context.Context, poNumber string) ([]entity.GoodsReceipt, error)
}
