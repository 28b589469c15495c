package reciboo

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/reciboo-portal/internal/application/catalog"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
)

const (
	providersPath      = "/proveedor"
	purchaseOrdersPath = "/catalogo-sap/orden-compra"
	goodsReceiptsPath  = "/catalogo-sap/entrada-mercancia"
)

var _ catalog.Source = (*Client)(nil)

// Providers GET /proveedor?estatus=ACTIVO
func (c *Client) Providers(ctx context.Context) ([]entity.Provider, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   providersPath,
		query:  url.Values{"estatus": {"ACTIVO"}},
	})
	if err != nil {
		return nil, err
	}
	providers, err := schema.ParseProviders(raw)
	if err != nil {
		return nil, invalid(providersPath, err)
	}
	return providers, nil
}

// PurchaseOrders GET /catalogo-sap/orden-compra?idProveedor=&rfc=
func (c *Client) PurchaseOrders(ctx context.Context, providerID int64, rfc string) ([]entity.PurchaseOrder, error) {
	if providerID == 0 || rfc == "" {
		return nil, domain.ErrMissingParams
	}
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   purchaseOrdersPath,
		query: url.Values{
			"idProveedor": {strconv.FormatInt(providerID, 10)},
			"rfc":         {rfc},
		},
	})
	if err != nil {
		return nil, err
	}
	orders, err := schema.ParsePurchaseOrders(raw)
	if err != nil {
		return nil, invalid(purchaseOrdersPath, err)
	}
	return orders, nil
}

// GoodsReceipts GET /catalogo-sap/entrada-mercancia?ordenCompra=
func (c *Client) GoodsReceipts(ctx context.Context, poNumber string) ([]entity.GoodsReceipt, error) {
	if poNumber == "" {
		return nil, domain.ErrMissingParams
	}
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   goodsReceiptsPath,
		query:  url.Values{"ordenCompra": {poNumber}},
	})
	if err != nil {
		return nil, err
	}
	receipts, err := schema.ParseGoodsReceipts(raw)
	if err != nil {
		return nil, invalid(goodsReceiptsPath, err)
	}
	return receipts, nil
}
