package cfdi

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"

	"github.com/ucarion/c14n"
)

// Canonicalize aplica C14N 1.0 (sin comentarios) al documento.
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	dec.CharsetReader = charsetReader
	return c14n.Canonicalize(dec)
}

// Fingerprint devuelve el SHA-256 (hex) de la forma canónica del XML, de modo que
// dos archivos con el mismo contenido lógico produzcan la misma huella.
// Si el documento no se puede canonicalizar se usa el hash de los bytes crudos.
func Fingerprint(data []byte) string {
	canonical, err := Canonicalize(data)
	if err != nil {
		return RawFingerprint(data)
	}
	return RawFingerprint(canonical)
}

// RawFingerprint SHA-256 (hex) de los bytes tal cual.
func RawFingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
