package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/reciboo-portal/pkg/money"
)

func TestGenerate_AcuseCompleto(t *testing.T) {
	po := "4500000001"
	id := int64(1001)
	v := wizard.View{
		State: wizard.State{
			SelectedSupplierID:  &id,
			SelectedSupplierRFC: "ANE010101AB1",
			CurrentSupplierName: "Aceros del Norte",
			SelectedPOID:        &po,
			SelectedGRs: []entity.GoodsReceipt{
				{ID: "gr-1", Number: "5000000001", Material: "Lámina", Amount: decimal.NewFromInt(1000), Tax: decimal.NewFromInt(160), ItemCount: 1},
				{ID: "gr-2", Number: "5000000002", Amount: decimal.NewFromInt(500), ItemCount: 2},
			},
			SelectedPDF: &entity.FileHandle{Name: "factura.pdf", Size: 10, Fingerprint: "ab12"},
			SelectedXML: &entity.FileHandle{Name: "factura.xml", Size: 20, Fingerprint: "f3c9e0a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d"},
			InvoiceData: entity.InvoiceData{Folio: "A-1", Currency: "MXN", Amount: decimal.NewFromInt(1500), Company: "1000"},
		},
		TotalSelectedAmount: decimal.NewFromInt(1500),
	}

	out, err := pdf.NewAcuseGenerator(money.NewFormatter("es-MX")).Generate(context.Background(), v)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerate_EstadoVacio(t *testing.T) {
	out, err := pdf.NewAcuseGenerator(nil).Generate(context.Background(), wizard.View{})
	require.NoError(t, err, "un asistente vacío también produce acuse")
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewAcuseGenerator(nil).Generate(ctx, wizard.View{})
	assert.ErrorIs(t, err, context.Canceled)
}
