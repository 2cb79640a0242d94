package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
)

type submitRequest struct {
	Contact    contactDTO   `json:"contact"`
	Sessions   []sessionDTO `json:"sessions"`
	PromoCodes []string     `json:"promoCodes"`
	Payment    *paymentDTO  `json:"payment"`
}

type submitResponse struct {
	OrderID string          `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Contact.Email == "" {
		writeError(w, http.StatusBadRequest, "contact email is required")
		return
	}

	var payment *checkout.PaymentMeta
	if p := req.Payment; p != nil {
		payment = &checkout.PaymentMeta{
			OrganizationWalletID: p.OrganizationWalletID,
			PaymentMethodID:      p.PaymentMethodID,
			PaymentIntentID:      p.PaymentIntentID,
		}
	}

	conf, err := h.checkout.Submit(r.Context(), checkout.SubmitRequest{
		Contact:    req.Contact.toContact(),
		Sessions:   toSessions(req.Sessions),
		PromoCodes: req.PromoCodes,
		Payment:    payment,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		OrderID: conf.OrderID,
		Total:   conf.Total,
	})
}
