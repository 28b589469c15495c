package cfdi

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Comprobante datos de cabecera de un CFDI (3.3 / 4.0) relevantes para precargar la factura.
type Comprobante struct {
	Version        string          `json:"version"`
	Serie          string          `json:"serie,omitempty"`
	Folio          string          `json:"folio,omitempty"`
	Fecha          string          `json:"fecha,omitempty"`
	Moneda         string          `json:"moneda,omitempty"`
	SubTotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	EmisorRFC      string          `json:"emisor_rfc,omitempty"`
	EmisorNombre   string          `json:"emisor_nombre,omitempty"`
	ReceptorRFC    string          `json:"receptor_rfc,omitempty"`
	ReceptorNombre string          `json:"receptor_nombre,omitempty"`
	UUID           string          `json:"uuid,omitempty"`
}

// FolioCompleto concatena serie y folio como aparece en la representación impresa.
func (c Comprobante) FolioCompleto() string {
	switch {
	case c.Serie == "":
		return c.Folio
	case c.Folio == "":
		return c.Serie
	default:
		return c.Serie + "-" + c.Folio
	}
}

// Parse lee un CFDI. Acepta documentos UTF-8, ISO-8859-1 o Windows-1252.
// Los prefijos de namespace (cfdi:, tfd:) se ignoran: se compara el nombre local.
func Parse(data []byte) (*Comprobante, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cfdi: XML vacío")
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("cfdi: XML mal formado: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Comprobante" {
		return nil, fmt.Errorf("cfdi: el documento no es un Comprobante")
	}

	c := &Comprobante{
		Version: attr(root, "Version", "version"),
		Serie:   attr(root, "Serie", "serie"),
		Folio:   attr(root, "Folio", "folio"),
		Fecha:   attr(root, "Fecha", "fecha"),
		Moneda:  attr(root, "Moneda", "moneda"),
	}
	var err error
	if c.Total, err = amount(root, "Total", "total"); err != nil {
		return nil, err
	}
	if c.SubTotal, err = amount(root, "SubTotal", "subTotal"); err != nil {
		return nil, err
	}

	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "Emisor":
			c.EmisorRFC = NormalizeRFC(attr(child, "Rfc", "rfc"))
			c.EmisorNombre = attr(child, "Nombre", "nombre")
		case "Receptor":
			c.ReceptorRFC = NormalizeRFC(attr(child, "Rfc", "rfc"))
			c.ReceptorNombre = attr(child, "Nombre", "nombre")
		case "Complemento":
			for _, comp := range child.ChildElements() {
				if comp.Tag == "TimbreFiscalDigital" {
					c.UUID = strings.ToUpper(attr(comp, "UUID"))
				}
			}
		}
	}
	return c, nil
}

func attr(e *etree.Element, names ...string) string {
	for _, n := range names {
		if v := e.SelectAttrValue(n, ""); v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func amount(e *etree.Element, names ...string) (decimal.Decimal, error) {
	raw := attr(e, names...)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cfdi: %s inválido %q: %w", names[0], raw, err)
	}
	return d, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "", "utf-8", "utf8":
		return input, nil
	}
	return nil, fmt.Errorf("cfdi: codificación no soportada: %s", charset)
}
