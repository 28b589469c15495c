// Package fixture sirve un catálogo de demostración para operar el portal sin backend.
package fixture

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciboo-portal/internal/application/catalog"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/pkg/cfdi"
)

// Catalog datos fijos: cuatro proveedores, seis órdenes de compra y ocho entradas.
type Catalog struct {
	providers []entity.Provider
	orders    []entity.PurchaseOrder
	receipts  []entity.GoodsReceipt
}

var _ catalog.Source = (*Catalog)(nil)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// NewCatalog construye el catálogo de demostración.
func NewCatalog() *Catalog {
	providers := []entity.Provider{
		{ID: 1001, SAPID: "0000100001", LegalName: "Proveedor A Tech", RFC: "ATE123456XYZ", CountryCode: "MX", CreatedAt: "2024-01-10"},
		{ID: 1002, SAPID: "0000100002", LegalName: "Proveedor B Industrial", RFC: "BIN456789ABC", CountryCode: "MX", CreatedAt: "2024-01-12"},
		{ID: 1003, SAPID: "0000100003", LegalName: "Proveedor C Oficina", RFC: "COF789123DEF", CountryCode: "MX", CreatedAt: "2024-02-01"},
		{ID: 1004, SAPID: "0000100004", LegalName: "Proveedor D Logística", RFC: "DLO012345GHI", CountryCode: "MX", CreatedAt: "2024-02-15"},
	}
	po := func(number, rfc, sap, amount, date string) entity.PurchaseOrder {
		return entity.PurchaseOrder{
			DocumentNumber: number, PaymentCondition: "NT30", CompanyCode: "1000",
			Amount: dec(amount), Currency: entity.CurrencyMXN, CreatedAt: date,
			ProviderNumber: sap, RFC: rfc,
		}
	}
	orders := []entity.PurchaseOrder{
		po("OC-2024-055", "ATE123456XYZ", "0000100001", "850.25", "2024-05-01"),
		po("OC-2024-059", "ATE123456XYZ", "0000100001", "1102.50", "2024-05-08"),
		po("OC-2024-058", "BIN456789ABC", "0000100002", "1200.00", "2024-05-03"),
		po("OC-2024-060", "COF789123DEF", "0000100003", "300.00", "2024-05-10"),
		po("OC-2024-061", "COF789123DEF", "0000100003", "150.00", "2024-05-12"),
		po("OC-2024-062", "DLO012345GHI", "0000100004", "2500.00", "2024-05-15"),
	}
	gr := func(id, number, material, iva, amount string, items int, status entity.GoodsReceiptStatus, po, date string) entity.GoodsReceipt {
		return entity.GoodsReceipt{
			ID: id, Number: number, Material: material, Tax: dec(iva), Amount: dec(amount),
			ItemCount: items, Status: status, PONumber: po, Date: date,
		}
	}
	receipts := []entity.GoodsReceipt{
		gr("gr_101", "EM-101A", `Laptop Pro 15"`, "80.04", "500.25", 5, entity.GRStatusPending, "OC-2024-055", "2024-05-05"),
		gr("gr_102", "EM-102A", "Mouse Inalámbrico", "56", "350", 1, entity.GRStatusInvoiced, "OC-2024-055", "2024-05-06"),
		gr("gr_301", "EM-301A", "Monitor 4K", "96.4", "602.5", 10, entity.GRStatusPending, "OC-2024-059", "2024-05-09"),
		gr("gr_302", "EM-302A", "Teclado Mecánico", "80", "500", 8, entity.GRStatusPending, "OC-2024-059", "2024-05-09"),
		gr("gr_201", "EM-201B", "Torno CNC", "192", "1200", 1, entity.GRStatusPending, "OC-2024-058", "2024-05-04"),
		gr("gr_401", "EM-401C", "Sillas de Oficina", "48", "300", 25, entity.GRStatusInvoiced, "OC-2024-060", "2024-05-11"),
		gr("gr_501", "EM-501C", "Papel Bond (Caja)", "24", "150", 50, entity.GRStatusPending, "OC-2024-061", "2024-05-13"),
		gr("gr_601", "EM-601D", "Servicio de Flete Nacional", "400", "2500", 1, entity.GRStatusPending, "OC-2024-062", "2024-05-16"),
	}
	return &Catalog{providers: providers, orders: orders, receipts: receipts}
}

func (c *Catalog) Providers(ctx context.Context) ([]entity.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]entity.Provider, len(c.providers))
	copy(out, c.providers)
	return out, nil
}

// PurchaseOrders órdenes cuyo RFC coincide y cuyo número de proveedor SAP corresponde al id.
func (c *Catalog) PurchaseOrders(ctx context.Context, providerID int64, rfc string) ([]entity.PurchaseOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rfc = cfdi.NormalizeRFC(rfc)
	if providerID == 0 || rfc == "" {
		return nil, domain.ErrMissingParams
	}
	var sap string
	for _, p := range c.providers {
		if p.ID == providerID {
			sap = p.SAPID
		}
	}
	out := []entity.PurchaseOrder{}
	for _, po := range c.orders {
		if po.RFC == rfc && po.ProviderNumber == sap {
			out = append(out, po)
		}
	}
	return out, nil
}

func (c *Catalog) GoodsReceipts(ctx context.Context, poNumber string) ([]entity.GoodsReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	poNumber = strings.TrimSpace(poNumber)
	if poNumber == "" {
		return nil, domain.ErrMissingParams
	}
	out := []entity.GoodsReceipt{}
	for _, gr := range c.receipts {
		if gr.PONumber == poNumber {
			out = append(out, gr)
		}
	}
	return out, nil
}
