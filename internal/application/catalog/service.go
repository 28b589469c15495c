package catalog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/pkg/cfdi"
)

// Config ventanas de frescura por accesor.
type Config struct {
	ProvidersTTL      time.Duration
	PurchaseOrdersTTL time.Duration
	GoodsReceiptsTTL  time.Duration
}

// DefaultConfig 3 min proveedores, 5 min órdenes de compra, 3 min entradas.
func DefaultConfig() Config {
	return Config{
		ProvidersTTL:      3 * time.Minute,
		PurchaseOrdersTTL: 5 * time.Minute,
		GoodsReceiptsTTL:  3 * time.Minute,
	}
}

// Service accesores de catálogo con caché. No reintenta ni refresca en segundo plano.
type Service struct {
	src       Source
	log       zerolog.Logger
	providers *memo[[]entity.Provider]
	orders    *memo[[]entity.PurchaseOrder]
	receipts  *memo[[]entity.GoodsReceipt]
}

// NewService crea el servicio sobre src.
func NewService(src Source, cfg Config, log zerolog.Logger) *Service {
	return newService(src, cfg, log, time.Now)
}

func newService(src Source, cfg Config, log zerolog.Logger, now func() time.Time) *Service {
	return &Service{
		src:       src,
		log:       log,
		providers: newMemo[[]entity.Provider](cfg.ProvidersTTL, now),
		orders:    newMemo[[]entity.PurchaseOrder](cfg.PurchaseOrdersTTL, now),
		receipts:  newMemo[[]entity.GoodsReceipt](cfg.GoodsReceiptsTTL, now),
	}
}

// ListProviders proveedores activos.
func (s *Service) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	v, cached, err := s.providers.get(ctx, "activos", s.src.Providers)
	if err != nil {
		s.log.Error().Err(err).Msg("catálogo: error al obtener proveedores")
		return nil, err
	}
	s.log.Debug().Bool("cached", cached).Int("count", len(v)).Msg("catálogo: proveedores")
	return v, nil
}

// ListPurchaseOrders órdenes de compra del proveedor. Sin id o RFC no consulta y devuelve ErrMissingParams.
func (s *Service) ListPurchaseOrders(ctx context.Context, providerID int64, rfc string) ([]entity.PurchaseOrder, error) {
	rfc = cfdi.NormalizeRFC(rfc)
	if providerID == 0 || rfc == "" {
		return nil, domain.ErrMissingParams
	}
	key := strconv.FormatInt(providerID, 10) + "|" + rfc
	v, cached, err := s.orders.get(ctx, key, func(ctx context.Context) ([]entity.PurchaseOrder, error) {
		return s.src.PurchaseOrders(ctx, providerID, rfc)
	})
	if err != nil {
		s.log.Error().Err(err).Int64("provider_id", providerID).Msg("catálogo: error al obtener órdenes de compra")
		return nil, err
	}
	s.log.Debug().Bool("cached", cached).Int("count", len(v)).Int64("provider_id", providerID).Msg("catálogo: órdenes de compra")
	return v, nil
}

// ListGoodsReceipts entradas de mercancía de una orden de compra.
func (s *Service) ListGoodsReceipts(ctx context.Context, poNumber string) ([]entity.GoodsReceipt, error) {
	poNumber = strings.TrimSpace(poNumber)
	if poNumber == "" {
		return nil, domain.ErrMissingParams
	}
	v, cached, err := s.receipts.get(ctx, poNumber, func(ctx context.Context) ([]entity.GoodsReceipt, error) {
		return s.src.GoodsReceipts(ctx, poNumber)
	})
	if err != nil {
		s.log.Error().Err(err).Str("po", poNumber).Msg("catálogo: error al obtener entradas de mercancía")
		return nil, err
	}
	s.log.Debug().Bool("cached", cached).Int("count", len(v)).Str("po", poNumber).Msg("catálogo: entradas de mercancía")
	return v, nil
}

// Invalidate descarta todo lo almacenado (ej: al cerrar sesión).
func (s *Service) Invalidate() {
	s.providers.invalidate()
	s.orders.invalidate()
	s.receipts.invalidate()
}
