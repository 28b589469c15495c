package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciboo-portal/internal/application/notice"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
	"github.com/jhoicas/reciboo-portal/pkg/cfdi"
	"github.com/jhoicas/reciboo-portal/pkg/money"
)

// State estado observable del asistente.
type State struct {
	CurrentStepIndex    int                   `json:"current_step_index"`
	SelectedSupplierID  *int64                `json:"selected_supplier_id"`
	SelectedSupplierRFC string                `json:"selected_supplier_rfc"`
	CurrentSupplierName string                `json:"current_supplier_name"`
	SelectedPOID        *string               `json:"selected_po_id"`
	SelectedGRs         []entity.GoodsReceipt `json:"selected_grs"`
	SelectedPDF         *entity.FileHandle    `json:"selected_pdf"`
	SelectedXML         *entity.FileHandle    `json:"selected_xml"`
	InvoiceData         entity.InvoiceData    `json:"invoice_data"`
	IsSubmitting        bool                  `json:"is_submitting"`
}

func initialState() State {
	return State{
		SelectedGRs: []entity.GoodsReceipt{},
		InvoiceData: entity.DefaultInvoiceData(),
	}
}

func (s State) clone() State {
	out := s
	out.SelectedGRs = make([]entity.GoodsReceipt, len(s.SelectedGRs))
	copy(out.SelectedGRs, s.SelectedGRs)
	if s.SelectedSupplierID != nil {
		id := *s.SelectedSupplierID
		out.SelectedSupplierID = &id
	}
	if s.SelectedPOID != nil {
		po := *s.SelectedPOID
		out.SelectedPOID = &po
	}
	if s.SelectedPDF != nil {
		f := *s.SelectedPDF
		out.SelectedPDF = &f
	}
	if s.SelectedXML != nil {
		f := *s.SelectedXML
		out.SelectedXML = &f
	}
	return out
}

// Wizard asistente de carga de factura contra órdenes de compra.
// Es seguro para uso concurrente; ningún candado se mantiene durante llamadas de red.
type Wizard struct {
	mu        sync.Mutex
	catalog   Catalog
	submitter Submitter
	notify    notice.Notifier
	money     *money.Formatter
	log       zerolog.Logger

	state     State
	providers []entity.Provider
	orders    []entity.PurchaseOrder // del proveedor seleccionado
	receipts  []entity.GoodsReceipt  // de la orden seleccionada

	ordersSeq, receiptsSeq         uint64
	cancelOrders, cancelReceipts   context.CancelFunc
	loadingOrders, loadingReceipts bool
}

// Options colaboradores opcionales del asistente.
type Options struct {
	Locale string // para FormatCurrency; vacío = es-MX
}

// New crea un asistente en el paso 0.
func New(c Catalog, s Submitter, n notice.Notifier, log zerolog.Logger, opts Options) *Wizard {
	locale := opts.Locale
	if locale == "" {
		locale = "es-MX"
	}
	return &Wizard{
		catalog:   c,
		submitter: s,
		notify:    n,
		money:     money.NewFormatter(locale),
		log:       log,
		state:     initialState(),
	}
}

// State copia del estado actual.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.clone()
}

func (w *Wizard) warn(err error, title, description string) {
	w.log.Warn().Err(err).Str("title", title).Msg("wizard: acción rechazada")
	w.notify.Notify(notice.Error(title, description))
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 0: proveedor
// ──────────────────────────────────────────────────────────────────────────────

// LoadProviders carga los proveedores activos que alimentan la lista del paso 0.
func (w *Wizard) LoadProviders(ctx context.Context) ([]entity.Provider, error) {
	providers, err := w.catalog.ListProviders(ctx)
	if err != nil {
		w.warn(err, "Error al cargar proveedores", err.Error())
		return nil, err
	}
	w.mu.Lock()
	w.providers = append([]entity.Provider(nil), providers...)
	w.mu.Unlock()
	return providers, nil
}

// FindProvider busca un proveedor cargado por id.
func (w *Wizard) FindProvider(id int64) (entity.Provider, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.providers {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Provider{}, false
}

// SelectSupplier valida y fija el proveedor y lleva al paso 1 desde cualquier paso.
// Cambiar de proveedor descarta la orden, las entradas seleccionadas y las listas cargadas.
func (w *Wizard) SelectSupplier(p entity.Provider) error {
	validated, err := schema.ValidateProvider(p)
	if err != nil {
		w.warn(err, "Error al seleccionar proveedor", err.Error())
		return err
	}

	w.mu.Lock()
	prev := w.state.SelectedSupplierID
	if prev == nil || *prev != validated.ID || w.state.SelectedSupplierRFC != validated.RFC {
		w.clearSupplierScopeLocked()
	}
	id := validated.ID
	w.state.SelectedSupplierID = &id
	w.state.SelectedSupplierRFC = validated.RFC
	w.state.CurrentSupplierName = validated.LegalName
	w.state.CurrentStepIndex = IndexSelectGR
	w.mu.Unlock()

	w.log.Info().Int64("provider_id", id).Str("rfc", validated.RFC).Msg("wizard: proveedor seleccionado")
	w.notify.Notify(notice.Success("Proveedor seleccionado: "+validated.LegalName, ""))
	return nil
}

// ResetSupplierSelection quita proveedor, orden y entradas y vuelve al paso 0.
func (w *Wizard) ResetSupplierSelection() {
	w.mu.Lock()
	w.clearSupplierScopeLocked()
	w.state.SelectedSupplierID = nil
	w.state.SelectedSupplierRFC = ""
	w.state.CurrentSupplierName = ""
	w.state.CurrentStepIndex = IndexSelectSupplier
	w.mu.Unlock()
	w.notify.Notify(notice.Info("Selección reiniciada", ""))
}

func (w *Wizard) clearSupplierScopeLocked() {
	w.cancelLoadsLocked()
	w.state.SelectedPOID = nil
	w.state.SelectedGRs = []entity.GoodsReceipt{}
	w.orders = nil
	w.receipts = nil
}

// cancelLoadsLocked invalida cualquier carga en vuelo: su respuesta será descartada.
func (w *Wizard) cancelLoadsLocked() {
	w.ordersSeq++
	w.receiptsSeq++
	if w.cancelOrders != nil {
		w.cancelOrders()
		w.cancelOrders = nil
	}
	if w.cancelReceipts != nil {
		w.cancelReceipts()
		w.cancelReceipts = nil
	}
	w.loadingOrders = false
	w.loadingReceipts = false
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 1: orden de compra y entradas de mercancía
// ──────────────────────────────────────────────────────────────────────────────

// LoadPurchaseOrders consulta las órdenes del proveedor seleccionado.
// Una carga posterior (o un cambio de proveedor) cancela la anterior y su resultado
// se descarta con ErrStaleResponse.
func (w *Wizard) LoadPurchaseOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	w.mu.Lock()
	if w.state.SelectedSupplierID == nil {
		w.mu.Unlock()
		w.warn(domain.ErrNoSupplier, "Selecciona un proveedor", "")
		return nil, domain.ErrNoSupplier
	}
	providerID, rfc := *w.state.SelectedSupplierID, w.state.SelectedSupplierRFC
	if w.cancelOrders != nil {
		w.cancelOrders()
	}
	ctx, cancel := context.WithCancel(ctx)
	w.ordersSeq++
	seq := w.ordersSeq
	w.cancelOrders = cancel
	w.loadingOrders = true
	w.mu.Unlock()

	orders, err := w.catalog.ListPurchaseOrders(ctx, providerID, rfc)

	w.mu.Lock()
	if seq != w.ordersSeq {
		w.mu.Unlock()
		cancel()
		w.log.Debug().Uint64("seq", seq).Msg("wizard: respuesta de órdenes obsoleta descartada")
		return nil, domain.ErrStaleResponse
	}
	w.cancelOrders = nil
	w.loadingOrders = false
	cancel()
	if err != nil {
		w.mu.Unlock()
		w.warn(err, "Error al cargar órdenes de compra", err.Error())
		return nil, err
	}
	w.orders = append([]entity.PurchaseOrder(nil), orders...)
	filtered := w.filteredOrdersLocked()
	w.mu.Unlock()
	return filtered, nil
}

func (w *Wizard) filteredOrdersLocked() []entity.PurchaseOrder {
	out := []entity.PurchaseOrder{}
	if w.state.SelectedSupplierID == nil {
		return out
	}
	for _, po := range w.orders {
		if cfdi.NormalizeRFC(po.RFC) == w.state.SelectedSupplierRFC {
			out = append(out, po)
		}
	}
	return out
}

// SelectPO selecciona una orden entre las del proveedor seleccionado.
// Cambiar de orden descarta las entradas cargadas pero conserva la selección.
func (w *Wizard) SelectPO(id string) error {
	w.mu.Lock()
	var found *entity.PurchaseOrder
	for _, po := range w.filteredOrdersLocked() {
		if po.DocumentNumber == id {
			po := po
			found = &po
			break
		}
	}
	if found == nil {
		w.mu.Unlock()
		err := fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
		w.warn(err, "Orden de compra no encontrada", "")
		return err
	}
	if err := schema.ValidatePurchaseOrder(*found); err != nil {
		w.mu.Unlock()
		w.warn(err, "Datos de orden de compra inválidos", err.Error())
		return err
	}
	if w.state.SelectedPOID == nil || *w.state.SelectedPOID != id {
		w.receiptsSeq++
		if w.cancelReceipts != nil {
			w.cancelReceipts()
			w.cancelReceipts = nil
		}
		w.loadingReceipts = false
		w.receipts = nil
	}
	po := id
	w.state.SelectedPOID = &po
	w.mu.Unlock()

	w.notify.Notify(notice.Success("Orden seleccionada: "+found.DocumentNumber, ""))
	return nil
}

// LoadGoodsReceipts consulta las entradas de la orden seleccionada, con la misma
// regla de descarte que LoadPurchaseOrders.
func (w *Wizard) LoadGoodsReceipts(ctx context.Context) ([]entity.GoodsReceipt, error) {
	w.mu.Lock()
	if w.state.SelectedPOID == nil {
		w.mu.Unlock()
		err := fmt.Errorf("%w: no hay orden de compra seleccionada", domain.ErrMissingParams)
		w.warn(err, "Selecciona una orden de compra", "")
		return nil, err
	}
	poNumber := *w.state.SelectedPOID
	if w.cancelReceipts != nil {
		w.cancelReceipts()
	}
	ctx, cancel := context.WithCancel(ctx)
	w.receiptsSeq++
	seq := w.receiptsSeq
	w.cancelReceipts = cancel
	w.loadingReceipts = true
	w.mu.Unlock()

	receipts, err := w.catalog.ListGoodsReceipts(ctx, poNumber)

	w.mu.Lock()
	if seq != w.receiptsSeq {
		w.mu.Unlock()
		cancel()
		w.log.Debug().Uint64("seq", seq).Msg("wizard: respuesta de entradas obsoleta descartada")
		return nil, domain.ErrStaleResponse
	}
	w.cancelReceipts = nil
	w.loadingReceipts = false
	cancel()
	if err != nil {
		w.mu.Unlock()
		w.warn(err, "Error al cargar entradas de mercancía", err.Error())
		return nil, err
	}
	w.receipts = append([]entity.GoodsReceipt(nil), receipts...)
	out := append([]entity.GoodsReceipt(nil), receipts...)
	w.mu.Unlock()
	return out, nil
}

// FindGoodsReceipt busca una entrada entre las cargadas para la orden seleccionada
// y, si no está, entre las ya seleccionadas.
func (w *Wizard) FindGoodsReceipt(id string) (entity.GoodsReceipt, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, gr := range w.receipts {
		if gr.ID == id {
			return gr, true
		}
	}
	for _, gr := range w.state.SelectedGRs {
		if gr.ID == id {
			return gr, true
		}
	}
	return entity.GoodsReceipt{}, false
}

// ToggleGRSelection agrega o quita la entrada de la selección.
// Una entrada facturada nunca se agrega (ErrAlreadyInvoiced); una entrada inválida
// devuelve *schema.Error. En ambos casos la selección no cambia.
func (w *Wizard) ToggleGRSelection(gr entity.GoodsReceipt) error {
	if gr.IsInvoiced() {
		w.log.Warn().Str("gr", gr.ID).Msg("wizard: entrada ya facturada")
		w.notify.Notify(notice.Info("Esta entrada ya ha sido facturada y no se puede seleccionar.", ""))
		return fmt.Errorf("%w: %s", domain.ErrAlreadyInvoiced, gr.Number)
	}
	if err := schema.ValidateGoodsReceipt(gr); err != nil {
		w.warn(err, "Datos de entrada de mercancía inválidos", err.Error())
		return err
	}

	w.mu.Lock()
	idx := indexOfGR(w.state.SelectedGRs, gr.ID)
	added := idx == -1
	if added {
		w.state.SelectedGRs = append(w.state.SelectedGRs, gr)
	} else {
		w.state.SelectedGRs = append(w.state.SelectedGRs[:idx:idx], w.state.SelectedGRs[idx+1:]...)
	}
	w.mu.Unlock()

	if added {
		w.notify.Notify(notice.Success(fmt.Sprintf("Entrada %s agregada", gr.Number), ""))
	} else {
		w.notify.Notify(notice.Info(fmt.Sprintf("Entrada %s removida", gr.Number), ""))
	}
	return nil
}

// RemoveSelectedGR quita la entrada por id; si no está seleccionada no hace nada.
func (w *Wizard) RemoveSelectedGR(id string) bool {
	w.mu.Lock()
	idx := indexOfGR(w.state.SelectedGRs, id)
	if idx == -1 {
		w.mu.Unlock()
		return false
	}
	removed := w.state.SelectedGRs[idx]
	w.state.SelectedGRs = append(w.state.SelectedGRs[:idx:idx], w.state.SelectedGRs[idx+1:]...)
	w.mu.Unlock()

	w.notify.Notify(notice.Info(fmt.Sprintf("Entrada %s removida de la selección", removed.Number), ""))
	return true
}

// IsGRSelected indica si la entrada está en la selección.
func (w *Wizard) IsGRSelected(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return indexOfGR(w.state.SelectedGRs, id) != -1
}

func indexOfGR(grs []entity.GoodsReceipt, id string) int {
	for i, g := range grs {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 2: archivos
// ──────────────────────────────────────────────────────────────────────────────

// HandleFileUpload acepta el PDF y/o el XML. Se procesa primero el PDF: si se rechaza,
// la llamada termina sin considerar el XML. Un archivo rechazado no reemplaza al anterior.
func (w *Wizard) HandleFileUpload(up Upload) error {
	if up.PDF != nil {
		if err := checkFile(entity.FileKindPDF, up.PDF); err != nil {
			title, desc := rejectionNotice(entity.FileKindPDF, err)
			w.warn(err, title, desc)
			return err
		}
		f := accept(entity.FileKindPDF, up.PDF)
		w.mu.Lock()
		w.state.SelectedPDF = f
		w.mu.Unlock()
		w.notify.Notify(notice.Success("Archivo PDF cargado correctamente", f.Name+" está listo para procesar"))
	}
	if up.XML != nil {
		if err := checkFile(entity.FileKindXML, up.XML); err != nil {
			title, desc := rejectionNotice(entity.FileKindXML, err)
			w.warn(err, title, desc)
			return err
		}
		f := accept(entity.FileKindXML, up.XML)
		w.mu.Lock()
		w.state.SelectedXML = f
		w.mu.Unlock()
		w.notify.Notify(notice.Success("XML cargado correctamente", f.Name+" está listo para procesar"))
	}
	return nil
}

// RemoveFile quita el archivo del tipo indicado.
func (w *Wizard) RemoveFile(kind entity.FileKind) error {
	w.mu.Lock()
	switch kind {
	case entity.FileKindPDF:
		w.state.SelectedPDF = nil
	case entity.FileKindXML:
		w.state.SelectedXML = nil
	default:
		w.mu.Unlock()
		return fmt.Errorf("%w: tipo de archivo %q", domain.ErrInvalidInput, kind)
	}
	w.mu.Unlock()
	if kind == entity.FileKindPDF {
		w.notify.Notify(notice.Info("Archivo PDF removido", ""))
	} else {
		w.notify.Notify(notice.Info("Archivo XML removido", ""))
	}
	return nil
}

// PrefillFromXML lee el CFDI adjunto y copia folio, moneda e importe a los datos de la
// factura. Avisa si el RFC emisor no coincide con el proveedor seleccionado.
func (w *Wizard) PrefillFromXML() (*cfdi.Comprobante, error) {
	w.mu.Lock()
	xmlFile := w.state.SelectedXML
	supplierRFC := w.state.SelectedSupplierRFC
	w.mu.Unlock()
	if xmlFile == nil {
		err := fmt.Errorf("%w: no hay XML adjunto", domain.ErrMissingParams)
		w.warn(err, "Sube el archivo XML de la factura", "")
		return nil, err
	}

	comp, err := cfdi.Parse(xmlFile.Data)
	if err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		w.warn(err, "No se pudo leer el XML", err.Error())
		return nil, err
	}

	w.mu.Lock()
	d := w.state.InvoiceData
	if folio := comp.FolioCompleto(); folio != "" {
		d.Folio = folio
	}
	for _, c := range entity.Currencies {
		if comp.Moneda == c {
			d.Currency = c
		}
	}
	if comp.Total.IsPositive() {
		d.Amount = comp.Total
	}
	w.state.InvoiceData = d
	w.mu.Unlock()

	if supplierRFC != "" && comp.EmisorRFC != "" && comp.EmisorRFC != supplierRFC {
		w.log.Warn().Str("emisor", comp.EmisorRFC).Str("proveedor", supplierRFC).Msg("wizard: RFC emisor distinto")
		w.notify.Notify(notice.Info("El RFC emisor del XML no coincide con el proveedor",
			fmt.Sprintf("XML: %s, proveedor: %s", comp.EmisorRFC, supplierRFC)))
	}
	w.notify.Notify(notice.Success("Datos precargados desde el XML", comp.FolioCompleto()))
	return comp, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 3: datos de la factura
// ──────────────────────────────────────────────────────────────────────────────

// UpdateInvoiceData mezcla los campos presentes sin validar.
func (w *Wizard) UpdateInvoiceData(p entity.InvoiceDataPatch) entity.InvoiceData {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.InvoiceData = p.Apply(w.state.InvoiceData)
	return w.state.InvoiceData
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación
// ──────────────────────────────────────────────────────────────────────────────

// NextStep avanza un paso si se cumple la condición del paso actual.
// En el último paso no hace nada.
func (w *Wizard) NextStep() error {
	w.mu.Lock()
	var gateMsg string
	switch w.state.CurrentStepIndex {
	case IndexSelectGR:
		if !w.canProceedToStep2Locked() {
			gateMsg = "Selecciona al menos una entrada de mercancía"
		}
	case IndexUploadInvoice:
		if !w.canProceedToStep3Locked() {
			gateMsg = "Sube tanto el archivo PDF como el XML"
		}
	case IndexInvoiceData:
		if !w.canProceedToStep4Locked() {
			gateMsg = "Completa todos los datos requeridos de la factura"
		}
	}
	if gateMsg != "" {
		idx := w.state.CurrentStepIndex
		w.mu.Unlock()
		err := fmt.Errorf("%w: paso %d", domain.ErrGateNotSatisfied, idx)
		w.warn(err, gateMsg, "")
		return err
	}
	if w.state.CurrentStepIndex < len(steps)-1 {
		w.state.CurrentStepIndex++
	}
	w.mu.Unlock()
	return nil
}

// PrevStep retrocede un paso; en el paso 0 no hace nada.
func (w *Wizard) PrevStep() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.CurrentStepIndex > 0 {
		w.state.CurrentStepIndex--
	}
}

func (w *Wizard) canProceedToStep2Locked() bool { return len(w.state.SelectedGRs) > 0 }

func (w *Wizard) canProceedToStep3Locked() bool {
	return w.state.SelectedPDF != nil && w.state.SelectedXML != nil
}

func (w *Wizard) canProceedToStep4Locked() bool {
	return schema.ValidateInvoiceData(w.state.InvoiceData) == nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 4: envío
// ──────────────────────────────────────────────────────────────────────────────

// SubmitInvoice revalida todo y registra la factura. Mientras un envío está en curso
// las demás llamadas devuelven ErrSubmitInProgress sin efecto. Si el envío falla el
// estado se conserva para reintentar; si tiene éxito se reinicia el asistente.
func (w *Wizard) SubmitInvoice(ctx context.Context) (*SubmitResult, error) {
	w.mu.Lock()
	if w.state.IsSubmitting {
		w.mu.Unlock()
		return nil, domain.ErrSubmitInProgress
	}
	if err := schema.ValidateInvoiceData(w.state.InvoiceData); err != nil {
		w.mu.Unlock()
		w.warn(err, "Error al cargar la factura", err.Error())
		return nil, err
	}
	if !w.canProceedToStep3Locked() {
		w.mu.Unlock()
		err := fmt.Errorf("%w: archivos faltantes", domain.ErrGateNotSatisfied)
		w.warn(err, "Error al cargar la factura", "Archivos faltantes")
		return nil, err
	}
	if len(w.state.SelectedGRs) == 0 {
		w.mu.Unlock()
		err := fmt.Errorf("%w: no hay entradas seleccionadas", domain.ErrGateNotSatisfied)
		w.warn(err, "Error al cargar la factura", "No hay entradas seleccionadas")
		return nil, err
	}
	sub := w.submissionLocked()
	w.state.IsSubmitting = true
	w.mu.Unlock()

	w.log.Info().Str("po", sub.PurchaseOrder).Int("entradas", len(sub.GoodsReceipts)).
		Str("total", sub.Total.StringFixed(2)).Msg("wizard: enviando factura")
	res, err := w.submitter.Submit(ctx, sub)

	w.mu.Lock()
	w.state.IsSubmitting = false
	if err != nil {
		w.mu.Unlock()
		desc := err.Error()
		if errors.Is(err, context.Canceled) {
			desc = "Por favor, inténtalo de nuevo más tarde."
		}
		w.warn(err, "Error al cargar la factura", desc)
		return nil, err
	}
	w.resetLocked()
	w.mu.Unlock()

	w.notify.Notify(notice.Success("Factura cargada exitosamente",
		fmt.Sprintf("Se procesaron %d entradas de mercancía.", len(sub.GoodsReceipts))))
	if res == nil {
		res = &SubmitResult{}
	}
	return res, nil
}

func (w *Wizard) submissionLocked() Submission {
	s := w.state.clone()
	sub := Submission{
		GoodsReceipts: s.SelectedGRs,
		Invoice:       s.InvoiceData,
		PDF:           *s.SelectedPDF,
		XML:           *s.SelectedXML,
		Total:         totalOf(s.SelectedGRs),
		Supplier:      entity.Supplier{Name: s.CurrentSupplierName, RFC: s.SelectedSupplierRFC},
	}
	if s.SelectedSupplierID != nil {
		sub.Supplier.ID = *s.SelectedSupplierID
	}
	if s.SelectedPOID != nil {
		sub.PurchaseOrder = *s.SelectedPOID
	}
	return sub
}

// ResetInvoiceProcess vuelve al estado inicial. Las cargas en vuelo se descartan.
func (w *Wizard) ResetInvoiceProcess() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

// Clear reinicia el asistente y olvida la lista de proveedores cargada. Se usa al
// cerrar sesión: la siguiente sesión vuelve a pedir los proveedores con su token.
func (w *Wizard) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
	w.providers = nil
}

func (w *Wizard) resetLocked() {
	w.cancelLoadsLocked()
	submitting := w.state.IsSubmitting
	w.state = initialState()
	w.state.IsSubmitting = submitting
	w.orders = nil
	w.receipts = nil
}

// FormatCurrency da formato al monto en la moneda de la factura en curso.
func (w *Wizard) FormatCurrency(amount decimal.Decimal) string {
	w.mu.Lock()
	code := w.state.InvoiceData.Currency
	w.mu.Unlock()
	if code == "" {
		code = entity.CurrencyMXN
	}
	return w.money.Format(amount, code)
}
