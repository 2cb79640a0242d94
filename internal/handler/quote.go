package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

type quoteRequest struct {
	Sessions   []sessionDTO `json:"sessions"`
	PromoCodes []string     `json:"promoCodes"`

	// Either explicit coordinates or a free-text address to geocode.
	DeliveryLocation *locationDTO `json:"deliveryLocation"`
	DeliveryAddress  string       `json:"deliveryAddress"`
}

type breakdownDTO struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

type quoteResponse struct {
	Estimate            decimal.Decimal `json:"estimate"`
	IsValid             bool            `json:"isValid"`
	Message             string          `json:"message,omitempty"`
	OutsideDeliveryZone bool            `json:"outsideDeliveryZone,omitempty"`
	Breakdown           *breakdownDTO   `json:"breakdown,omitempty"`
}

func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	delivery, err := h.resolveDelivery(r, req)
	if err != nil {
		if errors.Is(err, geocodeUnavailable) {
			writeError(w, http.StatusBadRequest, "address geocoding is not configured")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "could not resolve delivery address")
		return
	}

	quote, err := h.checkout.Quote(r.Context(), checkout.QuoteRequest{
		Sessions:   toSessions(req.Sessions),
		PromoCodes: req.PromoCodes,
		Delivery:   delivery,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	resp := quoteResponse{
		Estimate:            quote.Estimate,
		IsValid:             quote.Result.Valid,
		Message:             quote.Result.Reason,
		OutsideDeliveryZone: quote.Result.OutsideDeliveryZone,
	}
	if quote.Result.Valid {
		b := quote.Result.Breakdown
		resp.Breakdown = &breakdownDTO{
			Subtotal:    b.Subtotal,
			DeliveryFee: b.DeliveryFee,
			Discount:    b.Discount,
			Total:       b.Total,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

var geocodeUnavailable = errors.New("geocoder not configured")

// resolveDelivery picks explicit coordinates when provided, otherwise
// geocodes the free-text address. No delivery information is fine; the
// backend prices without a zone check.
func (h *Handler) resolveDelivery(r *http.Request, req quoteRequest) (*pricing.Coordinates, error) {
	if req.DeliveryLocation != nil {
		return req.DeliveryLocation.toCoordinates(), nil
	}
	if req.DeliveryAddress == "" {
		return nil, nil
	}
	if h.geocoder == nil {
		return nil, geocodeUnavailable
	}
	coords, err := h.geocoder.Resolve(r.Context(), req.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	return &coords, nil
}
