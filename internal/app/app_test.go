package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciboo-portal/internal/app"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/fixture"
	"github.com/jhoicas/reciboo-portal/pkg/config"
)

func fixtureConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test", Locale: "es-MX"},
		Reciboo: config.RecibooConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, Catalog: config.ModeFixture, SubmitMode: config.ModeSimulated},
		Cache:   config.CacheConfig{ProvidersTTL: time.Minute, PurchaseOrdersTTL: time.Minute, GoodsReceiptsTTL: time.Minute},
		Storage: config.StorageConfig{Path: app.MemoryStoragePath},
	}
}

func TestNew_Fixture_LoginYLogout(t *testing.T) {
	a, err := app.New(fixtureConfig(), zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, a.Session.IsAuthenticated())

	_, err = a.Auth.Login(context.Background(), entity.Credentials{Email: fixture.DemoEmail, Password: fixture.DemoPassword})
	require.NoError(t, err)
	assert.True(t, a.Session.IsAuthenticated())

	providers, err := a.Wizard.LoadProviders(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, providers)
	require.NoError(t, a.Wizard.SelectSupplier(providers[0]))

	require.NoError(t, a.Logout())
	assert.False(t, a.Session.IsAuthenticated())
	assert.Nil(t, a.Wizard.State().SelectedSupplierID, "el logout reinicia el asistente")
	assert.Empty(t, a.Notices.List(), "el logout descarta los avisos")
	assert.Empty(t, a.Wizard.View().Suppliers, "el logout olvida los proveedores de la sesión")
	_, ok := a.Wizard.FindProvider(providers[0].ID)
	assert.False(t, ok)
}

func TestLogout_SiguienteSesionRecargaProveedores(t *testing.T) {
	a, err := app.New(fixtureConfig(), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()
	creds := entity.Credentials{Email: fixture.DemoEmail, Password: fixture.DemoPassword}

	_, err = a.Auth.Login(ctx, creds)
	require.NoError(t, err)
	_, err = a.Wizard.LoadProviders(ctx)
	require.NoError(t, err)
	require.NoError(t, a.Logout())

	_, err = a.Auth.Login(ctx, creds)
	require.NoError(t, err)
	assert.Empty(t, a.Wizard.View().Suppliers, "sin recargar no hay proveedores")

	providers, err := a.Wizard.LoadProviders(ctx)
	require.NoError(t, err)
	assert.Len(t, a.Wizard.View().Suppliers, len(providers))
}

func TestNew_SesionPersistidaEnArchivo(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Storage.Path = t.TempDir() + "/storage.yaml"

	a, err := app.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	_, err = a.Auth.Login(context.Background(), entity.Credentials{Email: fixture.DemoEmail, Password: fixture.DemoPassword})
	require.NoError(t, err)

	b, err := app.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, b.Session.IsAuthenticated(), "la sesión se restaura al arrancar")
	assert.Equal(t, a.Session.Token(), b.Session.Token())
}
