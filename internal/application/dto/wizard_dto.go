package dto

import "github.com/jhoicas/reciboo-portal/internal/domain/entity"

// SelectSupplierRequest POST /api/wizard/supplier
type SelectSupplierRequest struct {
	ID int64 `json:"id"`
}

// SelectPORequest POST /api/wizard/purchase-order
type SelectPORequest struct {
	ID string `json:"id"`
}

// InvoiceDataRequest PATCH /api/wizard/invoice; los campos ausentes no se tocan.
type InvoiceDataRequest = entity.InvoiceDataPatch

// PrefillResponse datos leídos del CFDI adjunto.
type PrefillResponse struct {
	Folio     string `json:"folio"`
	Moneda    string `json:"moneda"`
	Total     string `json:"total"`
	EmisorRFC string `json:"emisor_rfc"`
	UUID      string `json:"uuid,omitempty"`
}

// SubmitResponse resultado del registro de la factura.
type SubmitResponse struct {
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message,omitempty"`
}
