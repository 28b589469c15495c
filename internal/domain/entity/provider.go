package entity

import "strings"

// Provider proveedor activo según /proveedor.
type Provider struct {
	ID          int64  `json:"id_proveedor"`
	UserID      int64  `json:"id_usuario"`
	SAPID       string `json:"id_proveedor_sap"`
	BlockID     int64  `json:"id_bloqueo"`
	LegalName   string `json:"nombre_razon_social"`
	RFC         string `json:"rfc"`
	CountryCode string `json:"pais_clave"`
	FilePath    string `json:"file_path"`
	CreatedAt   string `json:"fecha_creacion"`
	UpdatedAt   string `json:"fecha_modificacion"`
}

// IsMexican verdadero si el proveedor tributa en México. Sin país se asume MX.
func (p Provider) IsMexican() bool {
	return p.CountryCode == "" || strings.EqualFold(p.CountryCode, "MX")
}

// IsBlocked indica si el proveedor tiene un bloqueo registrado.
func (p Provider) IsBlocked() bool { return p.BlockID != 0 }

// Supplier proyección mínima del proveedor que usa el asistente.
func (p Provider) Supplier() Supplier {
	return Supplier{ID: p.ID, Name: p.LegalName, RFC: p.RFC}
}

// Supplier proveedor seleccionable en el paso 1.
type Supplier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	RFC  string `json:"rfc"`
}
