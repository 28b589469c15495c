package fixture_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/fixture"
)

func TestCatalog_DatosValidos(t *testing.T) {
	c := fixture.NewCatalog()
	ctx := context.Background()

	providers, err := c.Providers(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 4)
	for _, p := range providers {
		_, err := schema.ValidateProvider(p)
		assert.NoError(t, err, p.LegalName)

		orders, err := c.PurchaseOrders(ctx, p.ID, p.RFC)
		require.NoError(t, err)
		assert.NotEmpty(t, orders, p.LegalName)
		for _, po := range orders {
			assert.NoError(t, schema.ValidatePurchaseOrder(po))
			receipts, err := c.GoodsReceipts(ctx, po.DocumentNumber)
			require.NoError(t, err)
			for _, gr := range receipts {
				assert.NoError(t, schema.ValidateGoodsReceipt(gr), gr.ID)
			}
		}
	}
}

func TestCatalog_OrdenesPorProveedor(t *testing.T) {
	c := fixture.NewCatalog()
	orders, err := c.PurchaseOrders(context.Background(), 1001, "ate123456xyz")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "OC-2024-055", orders[0].DocumentNumber)
	assert.Equal(t, "OC-2024-059", orders[1].DocumentNumber)

	_, err = c.PurchaseOrders(context.Background(), 0, "")
	assert.ErrorIs(t, err, domain.ErrMissingParams)

	receipts, err := c.GoodsReceipts(context.Background(), "OC-2024-055")
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.True(t, receipts[1].IsInvoiced())
}

func TestAuthenticator(t *testing.T) {
	u, err := fixture.Authenticator{}.SignIn(context.Background(), entity.Credentials{Email: "ADMIN@test.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "demo-token", u.AccessToken)

	_, err = fixture.Authenticator{}.SignIn(context.Background(), entity.Credentials{Email: "admin@test.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSubmitter_RespetaCancelacion(t *testing.T) {
	s := fixture.NewSubmitter(time.Hour, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Submit(ctx, wizard.Submission{})
	assert.ErrorIs(t, err, context.Canceled)

	res, err := fixture.NewSubmitter(0, zerolog.Nop()).Submit(context.Background(), wizard.Submission{})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reference)
}
