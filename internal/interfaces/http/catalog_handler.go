package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciboo-portal/internal/application/catalog"
	"github.com/jhoicas/reciboo-portal/internal/application/dto"
)

// CatalogHandler consulta directa del catálogo (con caché).
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Providers godoc
// @Summary      Proveedores activos
// @Tags         catalogo
// @Produce      json
// @Success      200  {array}   entity.Provider
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/providers [get]
func (h *CatalogHandler) Providers(c *fiber.Ctx) error {
	out, err := h.svc.ListProviders(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PurchaseOrders lista las órdenes de compra de un proveedor.
// GET /api/purchase-orders?idProveedor=&rfc=
func (h *CatalogHandler) PurchaseOrders(c *fiber.Ctx) error {
	id := int64(c.QueryInt("idProveedor", 0))
	out, err := h.svc.ListPurchaseOrders(c.UserContext(), id, c.Query("rfc"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GoodsReceipts lista las entradas de mercancía de una orden.
// GET /api/goods-receipts?ordenCompra=
func (h *CatalogHandler) GoodsReceipts(c *fiber.Ctx) error {
	out, err := h.svc.ListGoodsReceipts(c.UserContext(), c.Query("ordenCompra"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invalidate descarta el catálogo en caché.
// POST /api/catalog/invalidate
func (h *CatalogHandler) Invalidate(c *fiber.Ctx) error {
	h.svc.Invalidate()
	return c.JSON(dto.OKResponse{OK: true})
}
