// Package tui es el asistente de carga de facturas en la terminal (bubbletea).
package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/application/notice"
	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
)

// actionTimeout tiempo máximo de cada acción contra el backend.
const actionTimeout = 30 * time.Second

// AcuseRenderer genera el acuse PDF del asistente.
type AcuseRenderer interface {
	Generate(ctx context.Context, v wizard.View) ([]byte, error)
}

// Deps dependencias de la TUI.
type Deps struct {
	Auth     *auth.AuthUseCase
	Logout   func() error // nil = solo cierra la sesión
	Wizard   *wizard.Wizard
	Notices  *notice.Feed
	Acuse    AcuseRenderer
	AcuseDir string // destino del acuse; vacío = directorio actual
}

type screen int

const (
	screenLogin screen = iota
	screenWizard
)

type listKind int

const (
	listSuppliers listKind = iota
	listOrders
	listReceipts
)

// item elemento de las listas de proveedores, órdenes y entradas.
type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

// Mensajes
type loggedInMsg struct{ name string }

type doneMsg struct {
	status string
	err    error
}

// Model modelo principal de la TUI.
type Model struct {
	deps   Deps
	screen screen
	width  int
	height int

	login      []textinput.Model // email, contraseña
	paths      []textinput.Model // pdf, xml
	fields     []textinput.Model // folio, moneda, importe, sociedad
	focusIndex int

	list     list.Model
	listKind listKind

	spinner  spinner.Model
	loading  bool
	status   string
	failed   bool
	lastStep int
}

// New crea el modelo. Con sesión restaurada arranca directo en el asistente.
func New(deps Deps) *Model {
	if deps.Logout == nil {
		deps.Logout = deps.Auth.Logout
	}
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	password := textinput.New()
	password.Placeholder = "contraseña"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	newInput := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		return in
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#00467F"))
	l := list.New(nil, delegate, 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#00467F"))

	m := &Model{
		deps:    deps,
		login:   []textinput.Model{email, password},
		paths:   []textinput.Model{newInput("ruta del PDF (pdf, jpg, png)"), newInput("ruta del XML")},
		fields:  []textinput.Model{newInput("folio"), newInput("moneda (MXN, USD, EUR)"), newInput("importe"), newInput("sociedad")},
		list:    l,
		spinner: s,
	}
	if deps.Auth.Session().IsAuthenticated() {
		m.screen = screenWizard
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.screen == screenWizard {
		return m.run("Proveedores cargados", m.loadProviders)
	}
	return textinput.Blink
}

// run ejecuta fn fuera del ciclo de la UI y reporta el resultado como doneMsg.
func (m *Model) run(okStatus string, fn func(ctx context.Context) error) tea.Cmd {
	m.loading = true
	work := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: okStatus}
	}
	return tea.Batch(work, m.spinner.Tick)
}

// ── Acciones ──────────────────────────────────────────────────────────────────

func (m *Model) loadProviders(ctx context.Context) error {
	_, err := m.deps.Wizard.LoadProviders(ctx)
	return err
}

func (m *Model) selectSupplier(id int64) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		p, ok := m.deps.Wizard.FindProvider(id)
		if !ok {
			return fmt.Errorf("proveedor %d no encontrado", id)
		}
		if err := m.deps.Wizard.SelectSupplier(p); err != nil {
			return err
		}
		_, err := m.deps.Wizard.LoadPurchaseOrders(ctx)
		return err
	}
}

func (m *Model) selectPO(id string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := m.deps.Wizard.SelectPO(id); err != nil {
			return err
		}
		_, err := m.deps.Wizard.LoadGoodsReceipts(ctx)
		return err
	}
}

func (m *Model) toggleGR(id string) func(ctx context.Context) error {
	return func(context.Context) error {
		gr, ok := m.deps.Wizard.FindGoodsReceipt(id)
		if !ok {
			return fmt.Errorf("entrada %s no encontrada", id)
		}
		return m.deps.Wizard.ToggleGRSelection(gr)
	}
}

func (m *Model) uploadFiles(pdfPath, xmlPath string) func(ctx context.Context) error {
	return func(context.Context) error {
		var up wizard.Upload
		var err error
		if up.PDF, err = readFile(pdfPath); err != nil {
			return err
		}
		if up.XML, err = readFile(xmlPath); err != nil {
			return err
		}
		if up.PDF == nil && up.XML == nil {
			return fmt.Errorf("indica al menos una ruta")
		}
		return m.deps.Wizard.HandleFileUpload(up)
	}
}

// readFile arma el FileHandle desde disco; el tipo se deduce de la extensión.
func readFile(path string) (*entity.FileHandle, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	f := &entity.FileHandle{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Size:        info.Size(),
	}
	if info.Size() <= wizard.MaxFileSize {
		if f.Data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("leer %s: %w", path, err)
		}
	}
	return f, nil
}

// applyInvoice toma los valores de los campos y devuelve la acción que los aplica.
func (m *Model) applyInvoice() func(ctx context.Context) error {
	folio := strings.TrimSpace(m.fields[0].Value())
	moneda := strings.ToUpper(strings.TrimSpace(m.fields[1].Value()))
	rawAmount := strings.TrimSpace(m.fields[2].Value())
	sociedad := strings.TrimSpace(m.fields[3].Value())
	return func(context.Context) error {
		patch := entity.InvoiceDataPatch{Folio: &folio, Currency: &moneda, Company: &sociedad}
		if rawAmount != "" {
			amount, err := decimal.NewFromString(rawAmount)
			if err != nil {
				return fmt.Errorf("importe inválido: %q", rawAmount)
			}
			patch.Amount = &amount
		}
		m.deps.Wizard.UpdateInvoiceData(patch)
		return nil
	}
}

func (m *Model) prefill(context.Context) error {
	_, err := m.deps.Wizard.PrefillFromXML()
	return err
}

func (m *Model) submit(ctx context.Context) error {
	_, err := m.deps.Wizard.SubmitInvoice(ctx)
	return err
}

// writeAcuse genera el acuse y lo guarda en AcuseDir.
func (m *Model) writeAcuse() tea.Cmd {
	m.loading = true
	view := m.deps.Wizard.View()
	return tea.Batch(func() tea.Msg {
		if m.deps.Acuse == nil {
			return doneMsg{err: fmt.Errorf("acuse no disponible")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		out, err := m.deps.Acuse.Generate(ctx, view)
		if err != nil {
			return doneMsg{err: err}
		}
		path := filepath.Join(m.deps.AcuseDir, fmt.Sprintf("acuse-%s.pdf", time.Now().Format("20060102-150405")))
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return doneMsg{err: fmt.Errorf("guardar acuse: %w", err)}
		}
		return doneMsg{status: "Acuse guardado en " + path}
	}, m.spinner.Tick)
}

// ── Update ────────────────────────────────────────────────────────────────────

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-4, 20), max(msg.Height-12, 5))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loggedInMsg:
		m.loading = false
		m.screen = screenWizard
		m.setStatus("Bienvenido, "+msg.name, false)
		return m, m.run("Proveedores cargados", m.loadProviders)

	case doneMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else if msg.status != "" {
			m.setStatus(msg.status, false)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		return m.updateWizard(msg)
	}
	return m, nil
}

func (m *Model) setStatus(s string, failed bool) {
	m.status, m.failed = s, failed
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.cycleFocus(m.login)
		return m, nil
	case tea.KeyEnter:
		creds := entity.Credentials{Email: m.login[0].Value(), Password: m.login[1].Value()}
		m.loading = true
		return m, tea.Batch(func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()
			user, err := m.deps.Auth.Login(ctx, creds)
			if err != nil {
				return doneMsg{err: err}
			}
			return loggedInMsg{name: user.Name}
		}, m.spinner.Tick)
	}
	var cmd tea.Cmd
	m.login[m.focusIndex], cmd = m.login[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.deps.Wizard
	switch msg.String() {
	case "ctrl+n":
		if err := w.NextStep(); err != nil {
			m.setStatus(err.Error(), true)
		}
		m.refresh()
		return m, nil
	case "ctrl+b":
		w.PrevStep()
		m.refresh()
		return m, nil
	case "ctrl+r":
		w.ResetInvoiceProcess()
		m.setStatus("Asistente reiniciado", false)
		m.refresh()
		return m, m.run("", m.loadProviders)
	case "ctrl+l":
		if err := m.deps.Logout(); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.screen = screenLogin
		m.login[1].SetValue("")
		m.setStatus("Sesión cerrada", false)
		return m, nil
	}

	switch w.State().CurrentStepIndex {
	case wizard.IndexSelectSupplier, wizard.IndexSelectGR:
		return m.updateList(msg)
	case wizard.IndexUploadInvoice:
		switch msg.String() {
		case "ctrl+p":
			return m, m.run("Datos precargados desde el XML", m.prefill)
		case "enter":
			return m, m.run("Archivos adjuntos", m.uploadFiles(m.paths[0].Value(), m.paths[1].Value()))
		}
		return m.updateInputs(msg, m.paths)
	case wizard.IndexInvoiceData:
		if msg.String() == "enter" {
			return m, m.run("Datos de factura actualizados", m.applyInvoice())
		}
		return m.updateInputs(msg, m.fields)
	case wizard.IndexConfirm:
		switch msg.String() {
		case "enter":
			return m, m.run("Factura enviada", m.submit)
		case "ctrl+a":
			return m, m.writeAcuse()
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.listKind == listOrders {
			m.listKind = listReceipts
		} else if m.listKind == listReceipts {
			m.listKind = listOrders
		}
		m.rebuildList()
		return m, nil
	case "enter", " ":
		sel, ok := m.list.SelectedItem().(item)
		if !ok {
			return m, nil
		}
		switch m.listKind {
		case listSuppliers:
			id, err := strconv.ParseInt(sel.id, 10, 64)
			if err != nil {
				return m, nil
			}
			m.listKind = listOrders
			return m, m.run("Órdenes de compra cargadas", m.selectSupplier(id))
		case listOrders:
			m.listKind = listReceipts
			return m, m.run("Entradas de mercancía cargadas", m.selectPO(sel.id))
		case listReceipts:
			return m, m.run("", m.toggleGR(sel.id))
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateInputs(msg tea.KeyMsg, inputs []textinput.Model) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.cycleFocus(inputs)
		return m, nil
	}
	if m.focusIndex >= len(inputs) {
		m.focusIndex = 0
	}
	var cmd tea.Cmd
	inputs[m.focusIndex], cmd = inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) cycleFocus(inputs []textinput.Model) {
	m.focusIndex = (m.focusIndex + 1) % len(inputs)
	for i := range inputs {
		if i == m.focusIndex {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

// refresh ajusta listas y campos al paso actual del asistente.
func (m *Model) refresh() {
	v := m.deps.Wizard.View()
	step := v.CurrentStepIndex
	switch step {
	case wizard.IndexSelectSupplier:
		m.listKind = listSuppliers
	case wizard.IndexSelectGR:
		if m.listKind == listSuppliers {
			m.listKind = listOrders
		}
		if v.SelectedPOID == nil {
			m.listKind = listOrders
		}
	}
	if step != m.lastStep {
		m.focusIndex = 0
		switch step {
		case wizard.IndexUploadInvoice:
			m.focusOnly(m.paths)
		case wizard.IndexInvoiceData:
			d := v.InvoiceData
			m.fields[0].SetValue(d.Folio)
			m.fields[1].SetValue(d.Currency)
			if d.Amount.IsZero() {
				m.fields[2].SetValue("")
			} else {
				m.fields[2].SetValue(d.Amount.StringFixed(2))
			}
			m.fields[3].SetValue(d.Company)
			m.focusOnly(m.fields)
		}
		m.lastStep = step
	}
	m.rebuildList()
}

func (m *Model) focusOnly(inputs []textinput.Model) {
	for i := range inputs {
		if i == 0 {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}

func (m *Model) rebuildList() {
	v := m.deps.Wizard.View()
	var items []list.Item
	switch m.listKind {
	case listSuppliers:
		m.list.Title = "Proveedores"
		for _, s := range v.Suppliers {
			items = append(items, item{id: fmt.Sprint(s.ID), title: s.Name, desc: s.RFC})
		}
	case listOrders:
		m.list.Title = "Órdenes de compra · " + v.CurrentSupplierName
		for _, po := range v.PurchaseOrders {
			mark := ""
			if v.SelectedPOID != nil && *v.SelectedPOID == po.DocumentNumber {
				mark = "● "
			}
			items = append(items, item{
				id:    po.DocumentNumber,
				title: mark + po.DocumentNumber,
				desc:  fmt.Sprintf("%s · %s %s · %s", po.CreatedAt, po.Amount.StringFixed(2), po.Currency, po.CompanyCode),
			})
		}
	case listReceipts:
		po := ""
		if v.SelectedPOID != nil {
			po = *v.SelectedPOID
		}
		m.list.Title = "Entradas de mercancía · " + po
		for _, gr := range v.GoodsReceipts {
			box := "[ ] "
			if m.deps.Wizard.IsGRSelected(gr.ID) {
				box = "[x] "
			}
			badge := pendingBadge.Render(string(gr.Status))
			if gr.IsInvoiced() {
				box = "    "
				badge = invoicedBadge.Render(string(gr.Status))
			}
			items = append(items, item{
				id:    gr.ID,
				title: box + gr.Number + " " + badge,
				desc:  fmt.Sprintf("%s · %d art. · %s", gr.Material, gr.ItemCount, m.deps.Wizard.FormatCurrency(gr.Amount)),
			})
		}
	}
	m.list.SetItems(items)
}

// ── View ──────────────────────────────────────────────────────────────────────

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Reciboo · Carga de facturas por orden de compra"))
	b.WriteString("\n\n")

	if m.screen == screenLogin {
		b.WriteString(boxStyle.Render("Iniciar sesión\n\n" + m.login[0].View() + "\n" + m.login[1].View()))
		b.WriteString("\n" + m.statusLine())
		b.WriteString("\n" + helpStyle.Render("tab: cambiar campo · enter: entrar · ctrl+c: salir"))
		return b.String()
	}

	v := m.deps.Wizard.View()
	var steps []string
	for i, s := range v.Steps {
		label := fmt.Sprintf("%d. %s", i+1, s.Name)
		if i == v.CurrentStepIndex {
			steps = append(steps, currentStepStyle.Render(label))
		} else {
			steps = append(steps, stepStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(steps, stepStyle.Render("  ›  ")))
	b.WriteString("\n\n")

	switch v.CurrentStepIndex {
	case wizard.IndexSelectSupplier, wizard.IndexSelectGR:
		b.WriteString(m.list.View())
		if v.CurrentStepIndex == wizard.IndexSelectGR {
			b.WriteString(fmt.Sprintf("\nSeleccionadas: %d · Total: %s", len(v.SelectedGRs), v.TotalSelectedFormatted))
		}
	case wizard.IndexUploadInvoice:
		b.WriteString(boxStyle.Render("Archivos de la factura\n\n" +
			m.paths[0].View() + "  " + fileLabel(v.SelectedPDF) + "\n" +
			m.paths[1].View() + "  " + fileLabel(v.SelectedXML)))
	case wizard.IndexInvoiceData:
		var rows []string
		keys := []string{"folio", "moneda", "importe", "sociedad"}
		for i, in := range m.fields {
			row := in.View()
			if msg, ok := v.ValidationErrors[keys[i]]; ok {
				row += "  " + errorStyle.Render(msg)
			}
			rows = append(rows, row)
		}
		b.WriteString(boxStyle.Render("Datos de la factura\n\n" + strings.Join(rows, "\n")))
	case wizard.IndexConfirm:
		b.WriteString(boxStyle.Render(confirmSummary(v)))
	}

	b.WriteString("\n" + m.statusLine())
	b.WriteString("\n" + helpStyle.Render(helpFor(v.CurrentStepIndex)))
	return b.String()
}

func (m *Model) statusLine() string {
	if m.loading {
		return m.spinner.View() + " Procesando..."
	}
	if m.status == "" {
		if n, ok := m.deps.Notices.Last(); ok {
			return noticeLine(n)
		}
		return ""
	}
	if m.failed {
		return errorStyle.Render("✗ " + m.status)
	}
	return successStyle.Render("✓ " + m.status)
}

func noticeLine(n notice.Notice) string {
	text := n.Title
	if n.Description != "" {
		text += ": " + n.Description
	}
	switch n.Level {
	case notice.LevelError:
		return errorStyle.Render(text)
	case notice.LevelInfo:
		return infoStyle.Render(text)
	default:
		return successStyle.Render(text)
	}
}

func fileLabel(f *entity.FileHandle) string {
	if f == nil {
		return helpStyle.Render("sin archivo")
	}
	return successStyle.Render(fmt.Sprintf("✓ %s (%d KB)", f.Name, f.Size/1024))
}

func confirmSummary(v wizard.View) string {
	po := ""
	if v.SelectedPOID != nil {
		po = *v.SelectedPOID
	}
	lines := []string{
		"Confirmar envío",
		"",
		"Proveedor:  " + v.CurrentSupplierName + " (" + v.SelectedSupplierRFC + ")",
		"Orden:      " + po,
		fmt.Sprintf("Entradas:   %d · %s", len(v.SelectedGRs), v.TotalSelectedFormatted),
		"Folio:      " + v.InvoiceData.Folio + " · " + v.InvoiceData.Currency + " " + v.InvoiceData.Amount.StringFixed(2),
		"Sociedad:   " + v.InvoiceData.Company,
		"PDF / XML:  " + fileName(v.SelectedPDF) + " / " + fileName(v.SelectedXML),
	}
	if v.IsSubmitting {
		lines = append(lines, "", infoStyle.Render("Enviando..."))
	}
	return strings.Join(lines, "\n")
}

func fileName(f *entity.FileHandle) string {
	if f == nil {
		return "—"
	}
	return f.Name
}

func helpFor(step int) string {
	common := "ctrl+n: siguiente · ctrl+b: anterior · ctrl+r: reiniciar · ctrl+l: cerrar sesión · ctrl+c: salir"
	switch step {
	case wizard.IndexSelectSupplier:
		return "enter: elegir proveedor · " + common
	case wizard.IndexSelectGR:
		return "enter: elegir orden / marcar entrada · tab: órdenes ⇄ entradas · " + common
	case wizard.IndexUploadInvoice:
		return "enter: adjuntar · ctrl+p: precargar desde XML · tab: cambiar campo · " + common
	case wizard.IndexInvoiceData:
		return "enter: guardar datos · tab: cambiar campo · " + common
	default:
		return "enter: enviar factura · ctrl+a: guardar acuse PDF · " + common
	}
}
