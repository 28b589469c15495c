package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/reciboo-portal/internal/application/dto"
	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// AcuseRenderer genera el acuse PDF del asistente.
type AcuseRenderer interface {
	Generate(ctx context.Context, v wizard.View) ([]byte, error)
}

// WizardHandler acciones del asistente de carga de facturas. Cada acción responde
// con la vista actualizada para que el cliente solo tenga que volver a pintar.
type WizardHandler struct {
	w     *wizard.Wizard
	acuse AcuseRenderer
}

// NewWizardHandler construye el handler.
func NewWizardHandler(w *wizard.Wizard, acuse AcuseRenderer) *WizardHandler {
	return &WizardHandler{w: w, acuse: acuse}
}

func (h *WizardHandler) view(c *fiber.Ctx) error {
	return c.JSON(h.w.View())
}

// View godoc
// @Summary      Estado del asistente
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  wizard.View
// @Router       /api/wizard [get]
func (h *WizardHandler) View(c *fiber.Ctx) error {
	return h.view(c)
}

// ── Paso 0: proveedor y orden de compra ───────────────────────────────────────

// LoadProviders POST /api/wizard/providers/load
func (h *WizardHandler) LoadProviders(c *fiber.Ctx) error {
	if _, err := h.w.LoadProviders(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// SelectSupplier POST /api/wizard/supplier {id}
// Si los proveedores aún no se cargaron, los carga antes de buscar.
func (h *WizardHandler) SelectSupplier(c *fiber.Ctx) error {
	var in dto.SelectSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, ok := h.w.FindProvider(in.ID)
	if !ok {
		if _, err := h.w.LoadProviders(c.UserContext()); err != nil {
			return writeError(c, err)
		}
		if p, ok = h.w.FindProvider(in.ID); !ok {
			return writeError(c, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, in.ID))
		}
	}
	if err := h.w.SelectSupplier(p); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// ResetSupplier DELETE /api/wizard/supplier
func (h *WizardHandler) ResetSupplier(c *fiber.Ctx) error {
	h.w.ResetSupplierSelection()
	return h.view(c)
}

// LoadPurchaseOrders POST /api/wizard/purchase-orders/load
func (h *WizardHandler) LoadPurchaseOrders(c *fiber.Ctx) error {
	if _, err := h.w.LoadPurchaseOrders(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// SelectPO POST /api/wizard/purchase-order {id}
func (h *WizardHandler) SelectPO(c *fiber.Ctx) error {
	var in dto.SelectPORequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.w.SelectPO(in.ID); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// ── Paso 1: entradas de mercancía ─────────────────────────────────────────────

// LoadGoodsReceipts POST /api/wizard/goods-receipts/load
func (h *WizardHandler) LoadGoodsReceipts(c *fiber.Ctx) error {
	if _, err := h.w.LoadGoodsReceipts(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// ToggleGR POST /api/wizard/goods-receipts/:id/toggle
func (h *WizardHandler) ToggleGR(c *fiber.Ctx) error {
	gr, ok := h.w.FindGoodsReceipt(c.Params("id"))
	if !ok {
		return writeError(c, fmt.Errorf("%w: entrada %s", domain.ErrNotFound, c.Params("id")))
	}
	if err := h.w.ToggleGRSelection(gr); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// RemoveGR DELETE /api/wizard/goods-receipts/:id
func (h *WizardHandler) RemoveGR(c *fiber.Ctx) error {
	if !h.w.RemoveSelectedGR(c.Params("id")) {
		return writeError(c, fmt.Errorf("%w: entrada %s no seleccionada", domain.ErrNotFound, c.Params("id")))
	}
	return h.view(c)
}

// ── Paso 2: archivos ──────────────────────────────────────────────────────────

// UploadFiles godoc
// @Summary      Adjuntar PDF y/o XML de la factura
// @Tags         wizard
// @Accept       multipart/form-data
// @Produce      json
// @Param        pdf  formData  file  false  "PDF, JPG o PNG"
// @Param        xml  formData  file  false  "CFDI XML"
// @Success      200  {object}  wizard.View
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/wizard/files [post]
func (h *WizardHandler) UploadFiles(c *fiber.Ctx) error {
	var up wizard.Upload
	var err error
	if up.PDF, err = formFile(c, "pdf"); err != nil {
		return badBody(c)
	}
	if up.XML, err = formFile(c, "xml"); err != nil {
		return badBody(c)
	}
	if up.PDF == nil && up.XML == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "adjunta un archivo pdf o xml"})
	}
	if err := h.w.HandleFileUpload(up); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// formFile lee la parte indicada; nil si no viene.
func formFile(c *fiber.Ctx, field string) (*entity.FileHandle, error) {
	hdr, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return readFile(hdr)
}

func readFile(hdr *multipart.FileHeader) (*entity.FileHandle, error) {
	f, err := hdr.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	// Un archivo mayor al límite se rechaza por Size; no hace falta leerlo completo.
	data, err := io.ReadAll(io.LimitReader(f, wizard.MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	return &entity.FileHandle{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Data:        data,
	}, nil
}

// RemoveFile DELETE /api/wizard/files/:kind (pdf | xml)
func (h *WizardHandler) RemoveFile(c *fiber.Ctx) error {
	if err := h.w.RemoveFile(entity.FileKind(c.Params("kind"))); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// Prefill POST /api/wizard/prefill
func (h *WizardHandler) Prefill(c *fiber.Ctx) error {
	comp, err := h.w.PrefillFromXML()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PrefillResponse{
		Folio:     comp.FolioCompleto(),
		Moneda:    comp.Moneda,
		Total:     comp.Total.StringFixed(2),
		EmisorRFC: comp.EmisorRFC,
		UUID:      comp.UUID,
	})
}

// ── Paso 3: datos de factura ──────────────────────────────────────────────────

// UpdateInvoice PATCH /api/wizard/invoice
func (h *WizardHandler) UpdateInvoice(c *fiber.Ctx) error {
	var in dto.InvoiceDataRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.w.UpdateInvoiceData(in)
	return h.view(c)
}

// ── Navegación y envío ────────────────────────────────────────────────────────

// Next POST /api/wizard/next
func (h *WizardHandler) Next(c *fiber.Ctx) error {
	if err := h.w.NextStep(); err != nil {
		return writeError(c, err)
	}
	return h.view(c)
}

// Prev POST /api/wizard/prev
func (h *WizardHandler) Prev(c *fiber.Ctx) error {
	h.w.PrevStep()
	return h.view(c)
}

// Submit godoc
// @Summary      Registrar la factura
// @Tags         wizard
// @Produce      json
// @Success      200  {object}  dto.SubmitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/wizard/submit [post]
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	res, err := h.w.SubmitInvoice(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SubmitResponse{Reference: res.Reference, Message: res.Message})
}

// Reset POST /api/wizard/reset
func (h *WizardHandler) Reset(c *fiber.Ctx) error {
	h.w.ResetInvoiceProcess()
	return h.view(c)
}

// Acuse GET /api/wizard/acuse.pdf
func (h *WizardHandler) Acuse(c *fiber.Ctx) error {
	out, err := h.acuse.Generate(c.UserContext(), h.w.View())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="acuse.pdf"`)
	return c.Send(out)
}
