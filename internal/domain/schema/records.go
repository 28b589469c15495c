package schema

import (
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/pkg/cfdi"
)

// Envelope respuesta estándar del backend: {status, errorDescription, object: {content: [...]}, message}.
type Envelope[T any] struct {
	Status           string  `json:"status"`
	ErrorDescription *string `json:"errorDescription"`
	Object           Page[T] `json:"object"`
	Message          string  `json:"message"`
}

// Page contenido paginado del envelope.
type Page[T any] struct {
	Content []T `json:"content" validate:"dive"`
}

var providerMessages = map[string]string{
	"id_proveedor.gt":              "El proveedor no tiene identificador",
	"nombre_razon_social.required": "La razón social es requerida",
	"rfc.required":                 "El RFC es requerido",
	"rfc.rfcmx":                    "El RFC no tiene un formato válido",
}

// providerSelection reglas que debe cumplir un proveedor para iniciar una factura.
// La forma del RFC solo se exige a proveedores mexicanos.
type providerSelection struct {
	ID          int64  `json:"id_proveedor" validate:"gt=0"`
	LegalName   string `json:"nombre_razon_social" validate:"required"`
	RFC         string `json:"rfc" validate:"required,rfcmx"`
	CountryCode string `json:"pais_clave"`
}

var goodsReceiptMessages = map[string]string{
	"itemCount.gte": "La entrada debe tener al menos un artículo",
	"amount.gte":    "El monto no puede ser negativo",
	"iva.gte":       "El IVA no puede ser negativo",
}

func normalizeProvider(p entity.Provider) entity.Provider {
	p.RFC = cfdi.NormalizeRFC(p.RFC)
	return p
}

// ValidateProvider normaliza el RFC y valida que el proveedor pueda seleccionarse.
func ValidateProvider(p entity.Provider) (entity.Provider, error) {
	p = normalizeProvider(p)
	sel := providerSelection{ID: p.ID, LegalName: p.LegalName, RFC: p.RFC, CountryCode: p.CountryCode}
	if err := Struct("provider", sel, providerMessages); err != nil {
		return p, err
	}
	return p, nil
}

// ValidatePurchaseOrder valida una orden de compra.
func ValidatePurchaseOrder(po entity.PurchaseOrder) error {
	return Struct("purchase_order", po, nil)
}

// ValidateGoodsReceipt valida una entrada de mercancía.
func ValidateGoodsReceipt(gr entity.GoodsReceipt) error {
	return Struct("goods_receipt", gr, goodsReceiptMessages)
}

// ParseProviders decodifica la respuesta de /proveedor. Solo se verifica la estructura:
// un proveedor con datos incompletos o extranjero no invalida la lista, se rechaza al
// seleccionarlo (ValidateProvider).
func ParseProviders(raw []byte) ([]entity.Provider, error) {
	env, err := decode[Envelope[entity.Provider]]("providers_response", raw)
	if err != nil {
		return nil, err
	}
	for i := range env.Object.Content {
		env.Object.Content[i] = normalizeProvider(env.Object.Content[i])
	}
	return nonNil(env.Object.Content), nil
}

// ParsePurchaseOrders decodifica y valida la respuesta de /catalogo-sap/orden-compra.
func ParsePurchaseOrders(raw []byte) ([]entity.PurchaseOrder, error) {
	env, err := decode[Envelope[entity.PurchaseOrder]]("purchase_orders_response", raw)
	if err != nil {
		return nil, err
	}
	if err := Struct("purchase_orders_response", env, nil); err != nil {
		return nil, err
	}
	return nonNil(env.Object.Content), nil
}

// ParseGoodsReceipts decodifica y valida la respuesta de /catalogo-sap/entrada-mercancia.
func ParseGoodsReceipts(raw []byte) ([]entity.GoodsReceipt, error) {
	env, err := decode[Envelope[entity.GoodsReceipt]]("goods_receipts_response", raw)
	if err != nil {
		return nil, err
	}
	if err := Struct("goods_receipts_response", env, goodsReceiptMessages); err != nil {
		return nil, err
	}
	return nonNil(env.Object.Content), nil
}

// ParseAuthenticatedUser decodifica y valida la respuesta de /auth/signin.
func ParseAuthenticatedUser(raw []byte) (*entity.AuthenticatedUser, error) {
	u, err := decode[entity.AuthenticatedUser]("authenticated_user", raw)
	if err != nil {
		return nil, err
	}
	if err := Struct("authenticated_user", u, nil); err != nil {
		return nil, err
	}
	return &u, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
