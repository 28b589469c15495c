package wizard

// StepID identificador estable de cada paso.
type StepID string

const (
	StepSelectSupplier StepID = "select_supplier"
	StepSelectGR       StepID = "select_gr"
	StepUploadInvoice  StepID = "upload_invoice"
	StepInvoiceData    StepID = "invoice_data"
	StepConfirm        StepID = "confirm"
)

// Step paso del asistente.
type Step struct {
	ID   StepID `json:"id"`
	Name string `json:"name"`
}

var steps = []Step{
	{ID: StepSelectSupplier, Name: "Seleccionar Proveedor"},
	{ID: StepSelectGR, Name: "Seleccionar Entradas"},
	{ID: StepUploadInvoice, Name: "Subir Factura"},
	{ID: StepInvoiceData, Name: "Datos de Factura"},
	{ID: StepConfirm, Name: "Confirmar"},
}

// Índices de paso.
const (
	IndexSelectSupplier = iota
	IndexSelectGR
	IndexUploadInvoice
	IndexInvoiceData
	IndexConfirm
)

// Steps copia de la lista ordenada de pasos.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}
