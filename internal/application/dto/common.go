package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Issues  []FieldIssue `json:"issues,omitempty"`
}

// FieldIssue error de validación de un campo.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// OKResponse respuesta sin contenido relevante.
type OKResponse struct {
	OK bool `json:"ok"`
}
