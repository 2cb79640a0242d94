// Package handler exposes the checkout pipeline over HTTP: quote, order
// submission, and promo validation endpoints consumed by the web clients.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/swiftfood/checkout-gateway/internal/backend"
	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

// maxRequestBytes caps request bodies; carts are small JSON documents.
const maxRequestBytes = 1 << 20

// Geocoder resolves free-text addresses to delivery coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (pricing.Coordinates, error)
}

// Searcher queries the remote catalogue.
type Searcher interface {
	Search(ctx context.Context, query string) ([]backend.SearchResult, error)
}

// Handler serves the gateway API, delegating to the checkout service.
type Handler struct {
	checkout *checkout.Service
	geocoder Geocoder
	search   Searcher
}

// New constructs a Handler. geocoder may be nil; address-based delivery
// locations are then rejected.
func New(svc *checkout.Service, geocoder Geocoder, search Searcher) *Handler {
	return &Handler{checkout: svc, geocoder: geocoder, search: search}
}

// Register attaches the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/quote", h.handleQuote)
	mux.HandleFunc("POST /api/orders", h.handleSubmit)
	mux.HandleFunc("POST /api/promotions/check", h.handlePromoCheck)
	mux.HandleFunc("GET /api/search", h.handleSearch)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

// decode reads and unmarshals the request body into v.
func decode(r *http.Request, v any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "decode body")
	}
	return nil
}

// writeDomainError maps pipeline errors onto HTTP responses. Validation
// failures and delivery-zone rejections are client errors; upstream faults
// are 502; anything else is logged and hidden behind a 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *checkout.SessionValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusUnprocessableEntity, validationErr.Error())
		return
	}
	if errors.Is(err, checkout.ErrNoSessions) {
		writeError(w, http.StatusBadRequest, "at least one session with items is required")
		return
	}

	var zone *backend.DeliveryZoneError
	if errors.As(err, &zone) {
		writeError(w, http.StatusUnprocessableEntity, zone.Message)
		return
	}
	var api *backend.APIError
	if errors.As(err, &api) {
		writeError(w, http.StatusBadGateway, api.Message)
		return
	}

	zctx.From(r.Context()).Error("checkout pipeline failure", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
