package schema_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
)

// ──────────────────────────────────────────────────────────────────────────────
// Factura
// ──────────────────────────────────────────────────────────────────────────────

func validInvoice() entity.InvoiceData {
	return entity.InvoiceData{
		Folio:    "A-1001",
		Currency: "MXN",
		Amount:   decimal.RequireFromString("1102.50"),
		Company:  "1000",
	}
}

func TestValidateInvoiceData_Valida(t *testing.T) {
	assert.NoError(t, schema.ValidateInvoiceData(validInvoice()))
	assert.Empty(t, schema.InvoiceErrors(validInvoice()))
}

func TestValidateInvoiceData_ValoresPorDefectoFallan(t *testing.T) {
	err := schema.ValidateInvoiceData(entity.DefaultInvoiceData())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	fields := schema.InvoiceErrors(entity.DefaultInvoiceData())
	assert.Equal(t, "El folio es requerido", fields["folio"])
	assert.Equal(t, "El importe debe ser mayor a 0", fields["importe"])
	assert.Equal(t, "La sociedad es requerida", fields["sociedad"])
	_, monedaMal := fields["moneda"]
	assert.False(t, monedaMal, "MXN es una moneda válida")
}

func TestValidateInvoiceField(t *testing.T) {
	d := validInvoice()
	assert.Nil(t, schema.ValidateInvoiceField(d, schema.FieldAmount))

	d.Amount = decimal.RequireFromString("0.01")
	assert.Nil(t, schema.ValidateInvoiceField(d, schema.FieldAmount), "0.01 es el mínimo permitido")

	d.Amount = decimal.RequireFromString("0.009")
	is := schema.ValidateInvoiceField(d, schema.FieldAmount)
	require.NotNil(t, is)
	assert.Equal(t, "importe", is.Path)

	d.Currency = "COP"
	require.NotNil(t, schema.ValidateInvoiceField(d, schema.FieldCurrency))
	assert.Nil(t, schema.ValidateInvoiceField(d, "campo_inexistente"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Registros del backend
// ──────────────────────────────────────────────────────────────────────────────

func TestParseProviders_NormalizaYValida(t *testing.T) {
	raw := []byte(`{"status":"OK","errorDescription":null,"message":"",
		"object":{"content":[{"id_proveedor":1001,"nombre_razon_social":"Proveedor A Tech","rfc":" ate123456xyz ",
		"id_usuario":3,"id_proveedor_sap":"0000100001","id_bloqueo":0,"pais_clave":"MX","usuario":null}]}}`)

	providers, err := schema.ParseProviders(raw)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "ATE123456XYZ", providers[0].RFC)
	assert.False(t, providers[0].IsBlocked())
}

func TestParseProviders_ProveedorExtranjero(t *testing.T) {
	raw := []byte(`{"status":"OK","object":{"content":[
		{"id_proveedor":1001,"nombre_razon_social":"Proveedor A Tech","rfc":"ATE123456XYZ","pais_clave":"MX"},
		{"id_proveedor":2001,"nombre_razon_social":"Acme Corp","rfc":"98-7654321","pais_clave":"US"}]}}`)

	providers, err := schema.ParseProviders(raw)
	require.NoError(t, err, "un proveedor extranjero no invalida la lista")
	require.Len(t, providers, 2)
	assert.Equal(t, "987654321", providers[1].RFC)

	_, err = schema.ValidateProvider(providers[1])
	assert.NoError(t, err, "el RFC extranjero no se valida con el formato mexicano")
}

func TestParseProviders_SoloEstructura(t *testing.T) {
	raw := []byte(`{"status":"OK","object":{"content":[
		{"id_proveedor":1,"nombre_razon_social":"Ok","rfc":"ATE123456XYZ"},
		{"id_proveedor":2,"nombre_razon_social":"","rfc":"XX"}]}}`)

	providers, err := schema.ParseProviders(raw)
	require.NoError(t, err)
	assert.Len(t, providers, 2)
}

func TestValidateProvider_Reglas(t *testing.T) {
	tests := []struct {
		name string
		p    entity.Provider
		path string
		msg  string
	}{
		{"RFC mexicano inválido", entity.Provider{ID: 2, LegalName: "Mal", RFC: "XX", CountryCode: "MX"}, "rfc", "El RFC no tiene un formato válido"},
		{"sin país se asume MX", entity.Provider{ID: 2, LegalName: "Mal", RFC: "XX"}, "rfc", "El RFC no tiene un formato válido"},
		{"sin razón social", entity.Provider{ID: 2, RFC: "ATE123456XYZ"}, "nombre_razon_social", "La razón social es requerida"},
		{"sin RFC extranjero", entity.Provider{ID: 2, LegalName: "Acme", CountryCode: "US"}, "rfc", "El RFC es requerido"},
		{"sin id", entity.Provider{LegalName: "Ok", RFC: "ATE123456XYZ"}, "id_proveedor", "El proveedor no tiene identificador"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.ValidateProvider(tt.p)
			se, ok := schema.AsError(err)
			require.True(t, ok, "debe ser un *schema.Error")
			require.Len(t, se.Issues, 1)
			assert.Equal(t, tt.path, se.Issues[0].Path)
			assert.Equal(t, tt.msg, se.Issues[0].Message)
		})
	}
}

func TestParseProviders_TipoIncorrecto(t *testing.T) {
	_, err := schema.ParseProviders([]byte(`{"object":{"content":[{"id_proveedor":"uno"}]}}`))
	se, ok := schema.AsError(err)
	require.True(t, ok)
	require.Len(t, se.Issues, 1)
	assert.Contains(t, se.Issues[0].Path, "id_proveedor")

	_, err = schema.ParseProviders([]byte(`{roto`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParsePurchaseOrders_ContenidoVacio(t *testing.T) {
	orders, err := schema.ParsePurchaseOrders([]byte(`{"status":"OK","object":{"content":null}}`))
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestParsePurchaseOrders_MontoComoTexto(t *testing.T) {
	raw := []byte(`{"object":{"content":[{"DocumentoCompras":"OC-2024-059","Monto":"1102.50","Moneda":"MXN","Rfc":"ATE123456XYZ","Isanual":null}]}}`)
	orders, err := schema.ParsePurchaseOrders(raw)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Amount.Equal(decimal.RequireFromString("1102.5")))
	assert.Nil(t, orders[0].Annual)
}

func TestValidateGoodsReceipt(t *testing.T) {
	gr := entity.GoodsReceipt{
		ID: "gr_301", Number: "EM-301A", Amount: decimal.RequireFromString("602.5"),
		Tax: decimal.RequireFromString("96.4"), ItemCount: 10, Status: entity.GRStatusPending,
	}
	assert.NoError(t, schema.ValidateGoodsReceipt(gr))

	gr.Status = "Cancelado"
	gr.ItemCount = 0
	gr.Amount = decimal.RequireFromString("-1")
	se, ok := schema.AsError(schema.ValidateGoodsReceipt(gr))
	require.True(t, ok)
	fields := se.Fields()
	assert.Contains(t, fields, "status")
	assert.Equal(t, "La entrada debe tener al menos un artículo", fields["itemCount"])
	assert.Equal(t, "El monto no puede ser negativo", fields["amount"])
}

func TestParseAuthenticatedUser(t *testing.T) {
	raw := []byte(`{"id":7,"username":"proveedor.a","permisos":["FACTURAR"],"nombre":"Ana","imagen_perfil":null,
		"email_address":"ana@proveedora.mx","modulos":[{"id_modulo":1,"descripcion":"Facturas","codigo":"FAC"}],
		"perfiles":[],"proveedor":true,"resetPassword":false,"estatus":"ACTIVO","accessToken":"tok","tokenType":"Bearer"}`)

	u, err := schema.ParseAuthenticatedUser(raw)
	require.NoError(t, err)
	assert.Equal(t, "tok", u.AccessToken)
	assert.True(t, u.HasPermission("FACTURAR"))
	assert.Empty(t, u.Public().AccessToken)

	_, err = schema.ParseAuthenticatedUser([]byte(`{"id":7,"username":"x","email_address":"x@y.mx"}`))
	se, ok := schema.AsError(err)
	require.True(t, ok)
	assert.Contains(t, se.Fields(), "accessToken")
}

func TestValidateCredentials(t *testing.T) {
	c, err := schema.ValidateCredentials(entity.Credentials{Email: " ana@proveedora.mx ", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ana@proveedora.mx", c.Email)

	_, err = schema.ValidateCredentials(entity.Credentials{})
	se, ok := schema.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "El email es obligatorio", se.Fields()["email"])
	assert.Equal(t, "La contraseña es obligatoria", se.Fields()["password"])
}
