package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/reciboo-portal/internal/application/wizard"
)

// Submitter simula el registro de la factura con una demora fija.
type Submitter struct {
	Delay time.Duration
	log   zerolog.Logger
}

var _ wizard.Submitter = (*Submitter)(nil)

// NewSubmitter crea el simulador; delay 0 responde de inmediato.
func NewSubmitter(delay time.Duration, log zerolog.Logger) *Submitter {
	return &Submitter{Delay: delay, log: log}
}

func (s *Submitter) Submit(ctx context.Context, sub wizard.Submission) (*wizard.SubmitResult, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	ref := uuid.NewString()
	s.log.Info().Str("reference", ref).Str("po", sub.PurchaseOrder).Msg("envío simulado")
	return &wizard.SubmitResult{
		Reference: ref,
		Message:   fmt.Sprintf("Factura %s registrada (simulado)", sub.Invoice.Folio),
	}, nil
}
