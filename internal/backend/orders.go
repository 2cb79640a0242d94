package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
)

var _ checkout.OrderGateway = (*Client)(nil)

type paymentPayload struct {
	OrganizationWalletID string `json:"organizationWalletId,omitempty"`
	PaymentMethodID      string `json:"paymentMethodId,omitempty"`
	PaymentIntentID      string `json:"paymentIntentId,omitempty"`
}

type createOrderRequest struct {
	UserID          string           `json:"userId"`
	ClientReference string           `json:"clientReference"`
	Contact         contactPayload   `json:"contact"`
	Sessions        []sessionPayload `json:"sessions"`
	PromoCodes      []string         `json:"promoCodes,omitempty"`
	Payment         *paymentPayload  `json:"payment,omitempty"`

	// Legacy single-event fields, mirrored from the first session for
	// consumers that predate multi-session orders.
	EventDate string `json:"eventDate"`
	EventTime string `json:"eventTime"`
}

type createOrderResponse struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// PlaceOrder submits a resolved order draft. Delivery-zone rejections
// surface as *DeliveryZoneError so callers can distinguish them from
// generic submission failures, matching the pricing path's classification.
func (c *Client) PlaceOrder(ctx context.Context, draft checkout.OrderDraft) (*checkout.Confirmation, error) {
	var payment *paymentPayload
	if p := draft.Payment; p != nil {
		payment = &paymentPayload{
			OrganizationWalletID: p.OrganizationWalletID,
			PaymentMethodID:      p.PaymentMethodID,
			PaymentIntentID:      p.PaymentIntentID,
		}
	}

	req := createOrderRequest{
		UserID:          draft.UserID,
		ClientReference: draft.ClientReference,
		Contact:         toContactPayload(draft.Contact),
		Sessions:        sessionsPayload(draft.Sessions),
		PromoCodes:      draft.PromoCodes,
		Payment:         payment,
		EventDate:       draft.EventDate,
		EventTime:       draft.EventTime,
	}

	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/catering-orders", nil, req, &resp); err != nil {
		return nil, err
	}

	return &checkout.Confirmation{OrderID: resp.ID, Total: resp.Total}, nil
}
