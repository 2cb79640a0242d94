package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type promoCheckRequest struct {
	Code     string       `json:"code"`
	Sessions []sessionDTO `json:"sessions"`
}

type promoCheckResponse struct {
	IsValid  bool            `json:"isValid"`
	Message  string          `json:"message,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}

func (h *Handler) handlePromoCheck(w http.ResponseWriter, r *http.Request) {
	var req promoCheckRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "promo code is required")
		return
	}

	check, err := h.checkout.CheckPromo(r.Context(), req.Code, toSessions(req.Sessions))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, promoCheckResponse{
		IsValid:  check.Valid,
		Message:  check.Message,
		Discount: check.Discount,
	})
}
