// Package app arma las dependencias del portal a partir de la configuración.
// Lo comparten el servidor HTTP (cmd/portal) y la terminal (cmd/tui).
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/application/catalog"
	"github.com/jhoicas/reciboo-portal/internal/application/notice"
	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/fixture"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/reciboo"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/storage"
	"github.com/jhoicas/reciboo-portal/pkg/config"
	"github.com/jhoicas/reciboo-portal/pkg/money"
)

// MemoryStoragePath valor de RECIBOO_STORAGE_PATH que desactiva la persistencia en disco.
const MemoryStoragePath = ":memory:"

// simulatedSubmitDelay demora del envío simulado.
const simulatedSubmitDelay = 2 * time.Second

// App contenedor de los casos de uso del portal.
type App struct {
	Config  *config.Config
	Session *auth.Session
	Auth    *auth.AuthUseCase
	Catalog *catalog.Service
	Wizard  *wizard.Wizard
	Notices *notice.Feed
	Acuse   *pdf.AcuseGenerator
	Money   *money.Formatter
	log     zerolog.Logger
}

// New construye la aplicación y restaura la sesión guardada.
// Una sesión guardada ilegible no impide arrancar: se registra y se continúa sin sesión.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, err := newStore(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(store, log.With().Str("component", "auth").Logger())
	if err := session.LoadFromStorage(); err != nil {
		log.Warn().Err(err).Msg("app: no se pudo restaurar la sesión")
	}

	client := reciboo.NewClient(reciboo.Config{
		BaseURL:    cfg.Reciboo.BaseURL,
		Timeout:    cfg.Reciboo.Timeout,
		SubmitPath: cfg.Reciboo.SubmitPath,
	}, session, log.With().Str("component", "reciboo").Logger())

	var (
		source        catalog.Source
		authenticator auth.Authenticator
		submitter     wizard.Submitter
	)
	switch cfg.Reciboo.Catalog {
	case config.ModeFixture:
		source, authenticator = fixture.NewCatalog(), fixture.Authenticator{}
	default:
		source, authenticator = client, client
	}
	switch cfg.Reciboo.SubmitMode {
	case config.ModeSimulated:
		submitter = fixture.NewSubmitter(simulatedSubmitDelay, log.With().Str("component", "submitter").Logger())
	default:
		submitter = client
	}

	notices := notice.NewFeed(notice.DefaultCapacity, log.With().Str("component", "notice").Logger())
	svc := catalog.NewService(source, catalog.Config{
		ProvidersTTL:      cfg.Cache.ProvidersTTL,
		PurchaseOrdersTTL: cfg.Cache.PurchaseOrdersTTL,
		GoodsReceiptsTTL:  cfg.Cache.GoodsReceiptsTTL,
	}, log.With().Str("component", "catalog").Logger())
	fmtr := money.NewFormatter(cfg.App.Locale)

	a := &App{
		Config:  cfg,
		Session: session,
		Auth:    auth.NewAuthUseCase(authenticator, session, log.With().Str("component", "auth").Logger()),
		Catalog: svc,
		Wizard: wizard.New(svc, submitter, notices, log.With().Str("component", "wizard").Logger(),
			wizard.Options{Locale: cfg.App.Locale}),
		Notices: notices,
		Acuse:   pdf.NewAcuseGenerator(fmtr),
		Money:   fmtr,
		log:     log,
	}
	log.Info().
		Str("catalog", cfg.Reciboo.Catalog).
		Str("submit", cfg.Reciboo.SubmitMode).
		Bool("authenticated", session.IsAuthenticated()).
		Msg("app: inicializada")
	return a, nil
}

// Logout cierra la sesión y descarta todo lo que dependía de ella:
// el asistente en curso con sus proveedores, el catálogo en caché y los avisos pendientes.
func (a *App) Logout() error {
	if err := a.Auth.Logout(); err != nil {
		return err
	}
	a.Wizard.Clear()
	a.Catalog.Invalidate()
	a.Notices.Drain()
	return nil
}

func newStore(path string) (auth.Storage, error) {
	if path == MemoryStoragePath {
		return storage.NewMemoryStore(), nil
	}
	fs, err := storage.NewFileStore(path)
	if err != nil {
		return nil, fmt.Errorf("app: almacenamiento de sesión: %w", err)
	}
	return fs, nil
}
