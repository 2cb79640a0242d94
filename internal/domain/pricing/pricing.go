// Package pricing defines the discriminated result types returned by the
// remote pricing endpoint. Responses are validated at the HTTP boundary and
// converted into these types rather than trusting response shape implicitly.
package pricing

import "github.com/shopspring/decimal"

// Coordinates is a delivery location in WGS84.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Breakdown is the server-computed authoritative price breakdown.
type Breakdown struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// Result is the outcome of an authoritative pricing call. Exactly one of
// the two arms is meaningful: a Valid result carries a Breakdown, an
// invalid one carries the rejection reason. Both the single-session and
// multi-session paths return a Result rather than an error for a rejection,
// so callers on the checkout path can render inline without special-casing.
type Result struct {
	Valid     bool
	Breakdown Breakdown

	// Reason is the server-provided rejection message when Valid is false.
	Reason string
	// OutsideDeliveryZone marks the distinguished rejection for addresses
	// the service does not deliver to.
	OutsideDeliveryZone bool
}

// Priced builds a valid Result from a breakdown.
func Priced(b Breakdown) Result {
	return Result{Valid: true, Breakdown: b}
}

// Rejected builds an invalid Result with the given reason.
func Rejected(reason string, outsideZone bool) Result {
	return Result{Reason: reason, OutsideDeliveryZone: outsideZone}
}

// PromoCheck is the outcome of validating a promo code against a cart.
type PromoCheck struct {
	Valid    bool
	Message  string
	Discount decimal.Decimal
}
