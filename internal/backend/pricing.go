package backend

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

var _ checkout.Pricer = (*Client)(nil)

type verifyCartRequest struct {
	Sessions   []sessionPayload `json:"sessions"`
	PromoCodes []string         `json:"promoCodes,omitempty"`
	Delivery   *locationPayload `json:"deliveryLocation,omitempty"`
}

type verifyCartResponse struct {
	Valid       bool            `json:"isValid"`
	Message     string          `json:"message"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// PriceSessions submits the grouped session set to the authoritative
// pricing endpoint. Rejections (delivery-zone violations and other 4xx
// responses) come back as an invalid pricing.Result; the error return is
// reserved for transport failures and server faults.
func (c *Client) PriceSessions(
	ctx context.Context,
	sessions []cart.MealSession,
	promoCodes []string,
	delivery *pricing.Coordinates,
) (pricing.Result, error) {
	req := verifyCartRequest{
		Sessions:   sessionsPayload(sessions),
		PromoCodes: promoCodes,
		Delivery:   toLocationPayload(delivery),
	}

	var resp verifyCartResponse
	if err := c.do(ctx, http.MethodPost, "/pricing/catering-verify-cart", nil, req, &resp); err != nil {
		var zone *DeliveryZoneError
		if errors.As(err, &zone) {
			return pricing.Rejected(zone.Message, true), nil
		}
		var api *APIError
		if errors.As(err, &api) && api.StatusCode < 500 {
			return pricing.Rejected(api.Message, false), nil
		}
		return pricing.Result{}, err
	}

	// Some rejections arrive as a 200 with isValid=false.
	if !resp.Valid {
		return pricing.Rejected(resp.Message, c.isZoneViolation(resp.Message)), nil
	}

	return pricing.Priced(pricing.Breakdown{
		Subtotal:    resp.Subtotal,
		DeliveryFee: resp.DeliveryFee,
		Discount:    resp.Discount,
		Total:       resp.Total,
	}), nil
}
