package wizard

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciboo-portal/internal/domain/entity"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
)

// View estado más valores derivados, listo para presentar.
type View struct {
	State
	Steps                  []Step                 `json:"steps"`
	CurrentStep            Step                   `json:"current_step"`
	Suppliers              []entity.Supplier      `json:"suppliers"`
	PurchaseOrders         []entity.PurchaseOrder `json:"purchase_orders"`
	SelectedPO             *entity.PurchaseOrder  `json:"selected_po"`
	GoodsReceipts          []entity.GoodsReceipt  `json:"goods_receipts"`
	TotalSelectedAmount    decimal.Decimal        `json:"total_selected_amount"`
	TotalSelectedFormatted string                 `json:"total_selected_formatted"`
	IsSelectionLocked      bool                   `json:"is_selection_locked"`
	CanProceedToStep2      bool                   `json:"can_proceed_to_step2"`
	CanProceedToStep3      bool                   `json:"can_proceed_to_step3"`
	CanProceedToStep4      bool                   `json:"can_proceed_to_step4"`
	ValidationErrors       map[string]string      `json:"validation_errors"`
	LoadingPurchaseOrders  bool                   `json:"loading_purchase_orders"`
	LoadingGoodsReceipts   bool                   `json:"loading_goods_receipts"`
}

// View calcula el estado derivado a partir de una copia consistente del estado.
func (w *Wizard) View() View {
	w.mu.Lock()
	st := w.state.clone()
	v := View{
		State:                 st,
		Steps:                 Steps(),
		Suppliers:             suppliersOf(w.providers),
		PurchaseOrders:        w.filteredOrdersLocked(),
		GoodsReceipts:         append([]entity.GoodsReceipt{}, w.receipts...),
		TotalSelectedAmount:   totalOf(st.SelectedGRs),
		IsSelectionLocked:     st.CurrentStepIndex > IndexSelectGR,
		CanProceedToStep2:     w.canProceedToStep2Locked(),
		CanProceedToStep3:     w.canProceedToStep3Locked(),
		CanProceedToStep4:     w.canProceedToStep4Locked(),
		ValidationErrors:      schema.InvoiceErrors(st.InvoiceData),
		LoadingPurchaseOrders: w.loadingOrders,
		LoadingGoodsReceipts:  w.loadingReceipts,
	}
	money, code := w.money, st.InvoiceData.Currency
	w.mu.Unlock()

	v.CurrentStep = v.Steps[st.CurrentStepIndex]
	if st.SelectedPOID != nil {
		for _, po := range v.PurchaseOrders {
			if po.DocumentNumber == *st.SelectedPOID {
				po := po
				v.SelectedPO = &po
				break
			}
		}
	}
	if code == "" {
		code = entity.CurrencyMXN
	}
	v.TotalSelectedFormatted = money.Format(v.TotalSelectedAmount, code)
	return v
}

// suppliersOf proveedores sin repetir id, en el orden recibido.
func suppliersOf(providers []entity.Provider) []entity.Supplier {
	seen := make(map[int64]bool, len(providers))
	out := []entity.Supplier{}
	for _, p := range providers {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p.Supplier())
	}
	return out
}

func totalOf(grs []entity.GoodsReceipt) decimal.Decimal {
	total := decimal.Zero
	for _, g := range grs {
		total = total.Add(g.Amount)
	}
	return total
}
