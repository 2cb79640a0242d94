// Package checkout orchestrates the catering checkout pipeline: session
// validation, local estimation, authoritative pricing, account resolution,
// and order submission. It holds no state of its own; everything
// authoritative lives behind the backend interfaces.
package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

// ContactInfo is the customer identity and delivery address confirmed
// before submission.
type ContactInfo struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	Postcode     string
	Location     *pricing.Coordinates

	// Optional organization billing details.
	Organization   string
	BillingAddress string
}

// FullName joins the contact's first and last name.
func (c ContactInfo) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// PaymentMeta carries optional payment routing metadata attached to a
// submission. Actual payment processing happens server-side.
type PaymentMeta struct {
	OrganizationWalletID string
	PaymentMethodID      string
	PaymentIntentID      string
}

// QuoteRequest asks for an authoritative price for a set of meal sessions.
type QuoteRequest struct {
	Sessions   []cart.MealSession
	PromoCodes []string
	Delivery   *pricing.Coordinates
}

// Quote pairs the local display estimate with the authoritative result.
// The estimate renders immediately; the result replaces it once known.
type Quote struct {
	Estimate decimal.Decimal
	Result   pricing.Result
}

// SubmitRequest carries everything needed to place a catering order.
type SubmitRequest struct {
	Contact    ContactInfo
	Sessions   []cart.MealSession
	PromoCodes []string
	Payment    *PaymentMeta
}

// Confirmation is the backend's acknowledgement of a created order.
type Confirmation struct {
	OrderID string
	Total   decimal.Decimal
}

// OrderDraft is the fully resolved order handed to the gateway for
// submission: sessions already validated, account already resolved. The
// top-level event date and time mirror the first session for backward
// compatibility with single-event consumers of the order feed.
type OrderDraft struct {
	UserID          string
	ClientReference string
	Contact         ContactInfo
	Sessions        []cart.MealSession
	PromoCodes      []string
	Payment         *PaymentMeta
	EventDate       string
	EventTime       string
}

// Pricer obtains an authoritative price for a session set.
type Pricer interface {
	PriceSessions(ctx context.Context, sessions []cart.MealSession, promoCodes []string, delivery *pricing.Coordinates) (pricing.Result, error)
}

// PromoValidator validates a promo code against a session set.
type PromoValidator interface {
	ValidatePromo(ctx context.Context, code string, sessions []cart.MealSession) (pricing.PromoCheck, error)
}

// OrderGateway submits a resolved order draft to the backend.
type OrderGateway interface {
	PlaceOrder(ctx context.Context, draft OrderDraft) (*Confirmation, error)
}

// PromoScreener is an optional local pre-screen for promo codes. A false
// answer is definitive (the code cannot be valid); a true answer still
// requires remote validation.
type PromoScreener interface {
	MightContain(code string) bool
}
