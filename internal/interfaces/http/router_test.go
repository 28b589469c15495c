package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/application/catalog"
	"github.com/jhoicas/reciboo-portal/internal/application/dto"
	"github.com/jhoicas/reciboo-portal/internal/application/notice"
	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/fixture"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/reciboo-portal/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const cfdiXML = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Version="4.0" Serie="A" Folio="1001" Moneda="MXN" Total="602.50">
  <cfdi:Emisor Rfc="ATE123456XYZ" Nombre="Proveedor A Tech"/>
</cfdi:Comprobante>`

type portal struct {
	app     *fiber.App
	session *auth.Session
	wizard  *wizard.Wizard
	notices *notice.Feed
}

// buildTestApp arma el portal completo sobre el catálogo de demostración,
// sin persistencia en disco y con envío inmediato.
func buildTestApp(t *testing.T) *portal {
	t.Helper()
	log := zerolog.Nop()
	session := auth.NewSession(storage.NewMemoryStore(), log)
	svc := catalog.NewService(fixture.NewCatalog(), catalog.DefaultConfig(), log)
	feed := notice.NewFeed(0, log)
	wz := wizard.New(svc, fixture.NewSubmitter(0, log), feed, log, wizard.Options{})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:  auth.NewAuthUseCase(fixture.Authenticator{}, session, log),
		Catalog: svc,
		Wizard:  wz,
		Notices: feed,
		Acuse:   pdf.NewAcuseGenerator(nil),
	})
	return &portal{app: app, session: session, wizard: wz, notices: feed}
}

func (p *portal) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := p.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (p *portal) login(t *testing.T) {
	t.Helper()
	resp := p.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: fixture.DemoEmail, Password: fixture.DemoPassword})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "el login de demostración debe funcionar")
}

func decodeView(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var v map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func uploadRequest(t *testing.T, files map[string][2]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, "factura."+field))
		h.Set("Content-Type", f[0])
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = io.WriteString(w, f[1])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/wizard/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Guards
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAuth_PaginaSinSesionRedirigeALogin(t *testing.T) {
	p := buildTestApp(t)
	resp := p.do(t, http.MethodGet, "/", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireAuth_APISinSesionRetorna401(t *testing.T) {
	p := buildTestApp(t)
	resp := p.do(t, http.MethodGet, "/api/wizard", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Code)
}

func TestRequireGuest_ConSesionRedirigeAInicio(t *testing.T) {
	p := buildTestApp(t)
	p.login(t)

	for _, path := range []string{"/login", "/register"} {
		resp := p.do(t, http.MethodGet, path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"), path)
	}
}

func TestRequireGuest_SinSesionMuestraLogin(t *testing.T) {
	p := buildTestApp(t)
	resp := p.do(t, http.MethodGet, "/login", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas(t *testing.T) {
	p := buildTestApp(t)
	resp := p.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: fixture.DemoEmail, Password: "otra"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, p.session.IsAuthenticated())
	resp.Body.Close()
}

func TestLogin_CamposVacios_RetornaIssues(t *testing.T) {
	p := buildTestApp(t)
	resp := p.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Len(t, e.Issues, 2, "email y contraseña son obligatorios")
}

func TestSessionYLogout(t *testing.T) {
	p := buildTestApp(t)
	p.login(t)

	resp := p.do(t, http.MethodGet, "/api/session", nil)
	var s dto.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	resp.Body.Close()
	assert.True(t, s.Authenticated)
	require.NotNil(t, s.User)
	assert.Empty(t, s.User.AccessToken, "la sesión pública no expone el token")

	resp = p.do(t, http.MethodPost, "/api/auth/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, p.session.IsAuthenticated())
}

// ──────────────────────────────────────────────────────────────────────────────
// Asistente completo
// ──────────────────────────────────────────────────────────────────────────────

func TestWizard_FlujoCompleto(t *testing.T) {
	p := buildTestApp(t)
	p.login(t)

	resp := p.do(t, http.MethodPost, "/api/wizard/supplier", dto.SelectSupplierRequest{ID: 1001})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decodeView(t, resp)
	assert.Equal(t, "ATE123456XYZ", v["selected_supplier_rfc"])
	assert.EqualValues(t, wizard.IndexSelectGR, v["current_step_index"])

	resp = p.do(t, http.MethodPost, "/api/wizard/purchase-orders/load", nil)
	v = decodeView(t, resp)
	assert.Len(t, v["purchase_orders"], 2)

	resp = p.do(t, http.MethodPost, "/api/wizard/purchase-order", dto.SelectPORequest{ID: "OC-2024-059"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = p.do(t, http.MethodPost, "/api/wizard/goods-receipts/load", nil)
	v = decodeView(t, resp)
	assert.Len(t, v["goods_receipts"], 2)

	resp = p.do(t, http.MethodPost, "/api/wizard/next", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "sin entradas no se avanza")
	resp.Body.Close()

	resp = p.do(t, http.MethodPost, "/api/wizard/goods-receipts/gr_301/toggle", nil)
	v = decodeView(t, resp)
	assert.Len(t, v["selected_grs"], 1)
	assert.Equal(t, true, v["can_proceed_to_step2"])

	resp = p.do(t, http.MethodPost, "/api/wizard/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := p.app.Test(uploadRequest(t, map[string][2]string{
		"pdf": {"application/pdf", "%PDF-1.4 demo"},
		"xml": {"text/xml", cfdiXML},
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decodeView(t, resp)
	assert.Equal(t, true, v["can_proceed_to_step3"])

	resp = p.do(t, http.MethodPost, "/api/wizard/prefill", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pre dto.PrefillResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pre))
	resp.Body.Close()
	assert.Equal(t, "A-1001", pre.Folio)
	assert.Equal(t, "602.50", pre.Total)

	resp = p.do(t, http.MethodPost, "/api/wizard/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = p.do(t, http.MethodPatch, "/api/wizard/invoice", map[string]any{"sociedad": "1000"})
	v = decodeView(t, resp)
	assert.Empty(t, v["validation_errors"])

	resp = p.do(t, http.MethodPost, "/api/wizard/next", nil)
	v = decodeView(t, resp)
	assert.EqualValues(t, wizard.IndexConfirm, v["current_step_index"])

	resp = p.do(t, http.MethodGet, "/api/wizard/acuse.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = p.do(t, http.MethodPost, "/api/wizard/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sub dto.SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sub))
	resp.Body.Close()
	assert.NotEmpty(t, sub.Reference)

	st := p.wizard.State()
	assert.Nil(t, st.SelectedSupplierID, "tras enviar el asistente se reinicia")
	assert.Equal(t, wizard.IndexSelectSupplier, st.CurrentStepIndex)

	resp = p.do(t, http.MethodGet, "/api/notices", nil)
	var notices []notice.Notice
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notices))
	resp.Body.Close()
	require.NotEmpty(t, notices)
	assert.Equal(t, "Factura cargada exitosamente", notices[len(notices)-1].Title)
}

func TestWizard_ProveedorInexistente(t *testing.T) {
	p := buildTestApp(t)
	p.login(t)

	resp := p.do(t, http.MethodPost, "/api/wizard/supplier", dto.SelectSupplierRequest{ID: 9999})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestWizard_EntradaFacturadaRetorna409(t *testing.T) {
	p := buildTestApp(t)
	p.login(t)

	resp := p.do(t, http.MethodPost, "/api/wizard/supplier", dto.SelectSupplierRequest{ID: 1001})
	resp.Body.Close()
	resp = p.do(t, http.MethodPost, "/api/wizard/purchase-orders/load", nil)
	resp.Body.Close()
	resp = p.do(t, http.MethodPost, "/api/wizard/purchase-order", dto.SelectPORequest{ID: "OC-2024-055"})
	resp.Body.Close()
	resp = p.do(t, http.MethodPost, "/api/wizard/goods-receipts/load", nil)
	resp.Body.Close()

	resp = p.do(t, http.MethodPost, "/api/wizard/goods-receipts/gr_102/toggle", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_INVOICED", decodeError(t, resp).Code)
}

func TestWizard_ArchivoNoPermitido(t *testing.T) {
	p := buildTestApp(t)
	p.login(t)

	resp, err := p.app.Test(uploadRequest(t, map[string][2]string{
		"pdf": {"application/msword", "doc"},
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", decodeError(t, resp).Code)
	assert.Nil(t, p.wizard.State().SelectedPDF)
}

func TestWizard_UploadSinArchivos(t *testing.T) {
	p := buildTestApp(t)
	p.login(t)

	resp, err := p.app.Test(uploadRequest(t, map[string][2]string{}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
