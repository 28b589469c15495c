package entity

// FileKind tipo de documento adjunto a la factura.
type FileKind string

const (
	FileKindPDF FileKind = "pdf"
	FileKindXML FileKind = "xml"
)

// FileHandle archivo en memoria seleccionado por el usuario.
type FileHandle struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Data        []byte `json:"-"`
}
