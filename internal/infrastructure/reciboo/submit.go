package reciboo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

var _ wizard.Submitter = (*Client)(nil)

// submitPayload parte JSON "datos" del envío multipart.
type submitPayload struct {
	IDProveedor int64              `json:"idProveedor"`
	RFC         string             `json:"rfc"`
	OrdenCompra string             `json:"ordenCompra"`
	Entradas    []string           `json:"entradas"`
	Factura     entity.InvoiceData `json:"factura"`
	Total       string             `json:"total"`
	HuellaPDF   string             `json:"huellaPdf"`
	HuellaXML   string             `json:"huellaXml"`
}

type submitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Object  struct {
		ID     any    `json:"id"`
		Folio  string `json:"folio"`
		Estado string `json:"estado"`
	} `json:"object"`
}

// Submit POST multipart con las partes "datos" (JSON), "pdf" y "xml".
func (c *Client) Submit(ctx context.Context, s wizard.Submission) (*wizard.SubmitResult, error) {
	payload := submitPayload{
		IDProveedor: s.Supplier.ID,
		RFC:         s.Supplier.RFC,
		OrdenCompra: s.PurchaseOrder,
		Factura:     s.Invoice,
		Total:       s.Total.StringFixed(2),
		HuellaPDF:   s.PDF.Fingerprint,
		HuellaXML:   s.XML.Fingerprint,
	}
	for _, gr := range s.GoodsReceipts {
		payload.Entradas = append(payload.Entradas, gr.ID)
	}
	datos, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("reciboo: serializar factura: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writePart(mw, "datos", "", "application/json", datos); err != nil {
		return nil, err
	}
	if err := writePart(mw, "pdf", s.PDF.Name, s.PDF.ContentType, s.PDF.Data); err != nil {
		return nil, err
	}
	if err := writePart(mw, "xml", s.XML.Name, s.XML.ContentType, s.XML.Data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("reciboo: cerrar multipart: %w", err)
	}

	raw, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        c.submitPath,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
	if err != nil {
		return nil, err
	}

	res := &wizard.SubmitResult{}
	var out submitResponse
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, invalid(c.submitPath, err)
		}
		res.Message = out.Message
		if out.Object.ID != nil {
			res.Reference = fmt.Sprint(out.Object.ID)
		}
	}
	return res, nil
}

func writePart(mw *multipart.Writer, field, filename, contentType string, data []byte) error {
	h := make(textproto.MIMEHeader)
	disp := fmt.Sprintf(`form-data; name=%q`, field)
	if filename != "" {
		disp += fmt.Sprintf(`; filename=%q`, filename)
	}
	h.Set("Content-Disposition", disp)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	w, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("reciboo: crear parte %s: %w", field, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("reciboo: escribir parte %s: %w", field, err)
	}
	return nil
}
