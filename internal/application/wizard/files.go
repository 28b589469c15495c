package wizard

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/pkg/cfdi"
)

// MaxFileSize tamaño máximo por archivo (10 MiB).
const MaxFileSize int64 = 10 * 1024 * 1024

var allowedTypes = map[entity.FileKind][]string{
	// el "PDF" de la factura también puede ser una imagen escaneada
	entity.FileKindPDF: {"application/pdf", "image/jpeg", "image/jpg", "image/png"},
	entity.FileKindXML: {"text/xml", "application/xml"},
}

// Upload archivos entregados en una sola llamada; nil = no se entregó.
type Upload struct {
	PDF *entity.FileHandle
	XML *entity.FileHandle
}

func mediaType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

// checkFile aplica las reglas de tamaño y tipo.
func checkFile(kind entity.FileKind, f *entity.FileHandle) error {
	size := f.Size
	if size == 0 {
		size = int64(len(f.Data))
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %s de %d bytes", domain.ErrFileTooLarge, kind, size)
	}
	mt := mediaType(f.ContentType)
	for _, allowed := range allowedTypes[kind] {
		if mt == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s con tipo %q", domain.ErrFileType, kind, f.ContentType)
}

// accept devuelve una copia del archivo con su huella calculada.
func accept(kind entity.FileKind, f *entity.FileHandle) *entity.FileHandle {
	out := *f
	if out.Size == 0 {
		out.Size = int64(len(out.Data))
	}
	if kind == entity.FileKindXML {
		out.Fingerprint = cfdi.Fingerprint(out.Data)
	} else {
		out.Fingerprint = cfdi.RawFingerprint(out.Data)
	}
	return &out
}

func rejectionNotice(kind entity.FileKind, err error) (title, description string) {
	label := strings.ToUpper(string(kind))
	if errors.Is(err, domain.ErrFileTooLarge) {
		return fmt.Sprintf("El archivo %s es demasiado grande", label), "Por favor selecciona un archivo menor a 10MB"
	}
	if kind == entity.FileKindPDF {
		return "Tipo de archivo PDF no válido", "Solo se permiten archivos PDF, JPG o PNG"
	}
	return "Tipo de archivo XML no válido", "Solo se permiten archivos XML"
}
