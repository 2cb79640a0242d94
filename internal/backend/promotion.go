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

var _ checkout.PromoValidator = (*Client)(nil)

type validatePromoRequest struct {
	Code     string           `json:"code"`
	Sessions []sessionPayload `json:"sessions"`
}

type validatePromoResponse struct {
	Valid    bool            `json:"isValid"`
	Message  string          `json:"message"`
	Discount decimal.Decimal `json:"discount"`
}

// ValidatePromo checks a promo code against the grouped session set. An
// invalid code is a normal outcome, reported in the PromoCheck, not an
// error.
func (c *Client) ValidatePromo(ctx context.Context, code string, sessions []cart.MealSession) (pricing.PromoCheck, error) {
	req := validatePromoRequest{
		Code:     code,
		Sessions: sessionsPayload(sessions),
	}

	var resp validatePromoResponse
	if err := c.do(ctx, http.MethodPost, "/promotions/validate-catering", nil, req, &resp); err != nil {
		var api *APIError
		if errors.As(err, &api) && api.StatusCode < 500 {
			return pricing.PromoCheck{Message: api.Message}, nil
		}
		return pricing.PromoCheck{}, err
	}

	return pricing.PromoCheck{
		Valid:    resp.Valid,
		Message:  resp.Message,
		Discount: resp.Discount,
	}, nil
}
