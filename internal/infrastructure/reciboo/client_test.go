package reciboo_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/reciboo"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, h http.HandlerFunc, token string) *reciboo.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return reciboo.NewClient(reciboo.Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, staticToken(token), zerolog.Nop())
}

// ────────────────────────────────────────────────────────────────────────────
// SignIn
// ────────────────────────────────────────────────────────────────────────────

func TestSignIn_OK(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/signin", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "signin no debe llevar token")

		var creds entity.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@prov.mx", creds.Email)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"username":"ana","email_address":"ana@prov.mx","modulos":[],"perfiles":[],"accessToken":"tok-1","tokenType":"Bearer"}`)
	}, "viejo")

	user, err := c.SignIn(context.Background(), entity.Credentials{Email: "ana@prov.mx", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "tok-1", user.AccessToken)
}

func TestSignIn_401(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"status":"ERROR","errorDescription":"Credenciales inválidas"}`)
	}, "")

	_, err := c.SignIn(context.Background(), entity.Credentials{Email: "a@b.mx", Password: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	var apiErr *reciboo.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
}

func TestSignIn_RespuestaInvalida(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":7,"username":"ana","email_address":"ana@prov.mx"}`)
	}, "")

	_, err := c.SignIn(context.Background(), entity.Credentials{Email: "a@b.mx", Password: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidResponse))
	_, ok := schema.AsError(err)
	assert.True(t, ok, "debe conservar el detalle del esquema")
}

// ────────────────────────────────────────────────────────────────────────────
// Catálogo
// ────────────────────────────────────────────────────────────────────────────

func TestProviders_EnviaTokenYFiltro(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/proveedor", r.URL.Path)
		assert.Equal(t, "ACTIVO", r.URL.Query().Get("estatus"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `{"status":"OK","object":{"content":[
			{"id_proveedor":1,"id_proveedor_sap":"0000100001","nombre_razon_social":"Aceros del Norte","rfc":" ane010101ab1 "}
		]}}`)
	}, "tok-1")

	providers, err := c.Providers(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "ANE010101AB1", providers[0].RFC, "el RFC se normaliza")
}

func TestProviders_ContenidoVacio(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"OK","object":{"content":null}}`)
	}, "tok")

	providers, err := c.Providers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, providers)
	assert.Empty(t, providers)
}

func TestPurchaseOrders_Query(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalogo-sap/orden-compra", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("idProveedor"))
		assert.Equal(t, "ANE010101AB1", r.URL.Query().Get("rfc"))
		_, _ = io.WriteString(w, `{"status":"OK","object":{"content":[
			{"DocumentoCompras":"4500000001","Sociedad":"1000","Monto":"1250.50","Moneda":"MXN","Rfc":"ANE010101AB1"}
		]}}`)
	}, "tok")

	orders, err := c.PurchaseOrders(context.Background(), 12, "ANE010101AB1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, decimal.RequireFromString("1250.50").Equal(orders[0].Amount))
}

func TestPurchaseOrders_FaltanParametros(t *testing.T) {
	called := false
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) { called = true }, "tok")

	_, err := c.PurchaseOrders(context.Background(), 0, "ANE010101AB1")
	assert.ErrorIs(t, err, domain.ErrMissingParams)
	_, err = c.PurchaseOrders(context.Background(), 1, "")
	assert.ErrorIs(t, err, domain.ErrMissingParams)
	assert.False(t, called, "no debe llamar al backend")
}

func TestGoodsReceipts_EstadoDesconocido(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4500000001", r.URL.Query().Get("ordenCompra"))
		_, _ = io.WriteString(w, `{"status":"OK","object":{"content":[
			{"id":"gr-1","number":"5000000001","amount":"10","iva":"1.6","itemCount":1,"status":"Cancelado"}
		]}}`)
	}, "tok")

	_, err := c.GoodsReceipts(context.Background(), "4500000001")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestGoodsReceipts_500(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, "tok")

	_, err := c.GoodsReceipts(context.Background(), "4500000001")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDo_Cancelacion(t *testing.T) {
	release := make(chan struct{})
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, "tok")
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Providers(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ────────────────────────────────────────────────────────────────────────────
// Submit
// ────────────────────────────────────────────────────────────────────────────

func TestSubmit_Multipart(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/factura/orden-compra", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var datos map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("datos")), &datos))
		assert.Equal(t, "4500000001", datos["ordenCompra"])
		assert.Equal(t, "2750.00", datos["total"])
		assert.Len(t, datos["entradas"], 2)

		pdf, hdr, err := r.FormFile("pdf")
		require.NoError(t, err)
		defer pdf.Close()
		assert.Equal(t, "factura.pdf", hdr.Filename)
		body, _ := io.ReadAll(pdf)
		assert.Equal(t, "%PDF-1.4", string(body))

		_, _, err = r.FormFile("xml")
		require.NoError(t, err)

		_, _ = io.WriteString(w, `{"status":"OK","message":"Factura registrada","object":{"id":991}}`)
	}, "tok")

	res, err := c.Submit(context.Background(), wizard.Submission{
		Supplier:      entity.Supplier{ID: 1, Name: "Aceros", RFC: "ANE010101AB1"},
		PurchaseOrder: "4500000001",
		GoodsReceipts: []entity.GoodsReceipt{{ID: "gr-1"}, {ID: "gr-2"}},
		Invoice:       entity.InvoiceData{Folio: "A-1", Currency: "MXN", Amount: decimal.NewFromInt(2750), Company: "1000"},
		PDF:           entity.FileHandle{Name: "factura.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")},
		XML:           entity.FileHandle{Name: "factura.xml", ContentType: "text/xml", Data: []byte("<cfdi:Comprobante/>")},
		Total:         decimal.NewFromInt(2750),
	})
	require.NoError(t, err)
	assert.Equal(t, "991", res.Reference)
	assert.Equal(t, "Factura registrada", res.Message)
}

func TestSubmit_ErrorBackend(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"status":"ERROR","message":"Entrada ya facturada"}`)
	}, "tok")

	_, err := c.Submit(context.Background(), wizard.Submission{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "Entrada ya facturada")
}
