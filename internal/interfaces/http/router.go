package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/application/catalog"
	"github.com/jhoicas/reciboo-portal/internal/application/notice"
	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC  *auth.AuthUseCase
	Logout  func() error // logout completo de la app; nil = solo sesión
	Catalog *catalog.Service
	Wizard  *wizard.Wizard
	Notices *notice.Feed
	Acuse   AcuseRenderer
}

// Router registra páginas y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	session := deps.AuthUC.Session()

	// Páginas
	app.Get("/", RequireAuth(session), HomePage)
	app.Get(LoginPath, RequireGuest(session), LoginPage)
	app.Get("/register", RequireGuest(session), RegisterPage)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Logout)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/session", authHandler.Session)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", RequireAuth(session))

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Catalog)
	protected.Get("/providers", catalogHandler.Providers)
	protected.Get("/purchase-orders", catalogHandler.PurchaseOrders)
	protected.Get("/goods-receipts", catalogHandler.GoodsReceipts)
	protected.Post("/catalog/invalidate", catalogHandler.Invalidate)

	// Avisos
	noticeHandler := NewNoticeHandler(deps.Notices)
	protected.Get("/notices", noticeHandler.List)
	protected.Delete("/notices", noticeHandler.Drain)

	// Asistente
	wz := protected.Group("/wizard")
	wizardHandler := NewWizardHandler(deps.Wizard, deps.Acuse)
	wz.Get("/", wizardHandler.View)
	wz.Post("/providers/load", wizardHandler.LoadProviders)
	wz.Post("/supplier", wizardHandler.SelectSupplier)
	wz.Delete("/supplier", wizardHandler.ResetSupplier)
	wz.Post("/purchase-orders/load", wizardHandler.LoadPurchaseOrders)
	wz.Post("/purchase-order", wizardHandler.SelectPO)
	wz.Post("/goods-receipts/load", wizardHandler.LoadGoodsReceipts)
	wz.Post("/goods-receipts/:id/toggle", wizardHandler.ToggleGR)
	wz.Delete("/goods-receipts/:id", wizardHandler.RemoveGR)
	wz.Post("/files", wizardHandler.UploadFiles)
	wz.Delete("/files/:kind", wizardHandler.RemoveFile)
	wz.Post("/prefill", wizardHandler.Prefill)
	wz.Patch("/invoice", wizardHandler.UpdateInvoice)
	wz.Post("/next", wizardHandler.Next)
	wz.Post("/prev", wizardHandler.Prev)
	wz.Post("/submit", wizardHandler.Submit)
	wz.Post("/reset", wizardHandler.Reset)
	wz.Get("/acuse.pdf", wizardHandler.Acuse)
}
