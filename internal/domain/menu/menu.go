// Package menu holds the catalogue types the checkout pipeline consumes.
// Items are sourced from the remote catalogue and treated as immutable here.
package menu

import "github.com/shopspring/decimal"

// Portion-scaling fallbacks used when the catalogue omits the attributes.
// Inherited defaults whose correctness across restaurants is unconfirmed;
// keep them named so they are easy to audit against real menu data.
const (
	DefaultCateringQuantityUnit = 7
	DefaultFeedsPerUnit         = 10
)

// AddOn is an optional extra offered alongside a menu item.
type AddOn struct {
	Name  string
	Price decimal.Decimal
}

// Item is a single catalogue entry offered by a restaurant.
type Item struct {
	ID             string
	Name           string
	RestaurantID   string
	RestaurantName string

	Price         decimal.Decimal
	DiscountPrice decimal.Decimal
	Discounted    bool

	AddOns []AddOn

	// CateringQuantityUnit is the number of portions one backend quantity
	// unit represents; FeedsPerUnit is how many guests one unit feeds.
	// Zero means "not set" and falls back to the package defaults.
	CateringQuantityUnit int
	FeedsPerUnit         int
}

// UnitPrice returns the effective price per quantity unit: the discount
// price when the item is discounted and the discount price is positive,
// the base price otherwise.
func (i Item) UnitPrice() decimal.Decimal {
	if i.Discounted && i.DiscountPrice.IsPositive() {
		return i.DiscountPrice
	}
	return i.Price
}

// QuantityUnit returns the item's portion unit, falling back to
// DefaultCateringQuantityUnit when the catalogue did not set one.
func (i Item) QuantityUnit() int {
	if i.CateringQuantityUnit > 0 {
		return i.CateringQuantityUnit
	}
	return DefaultCateringQuantityUnit
}

// Feeds returns how many guests one quantity unit feeds, falling back to
// DefaultFeedsPerUnit when the catalogue did not set it.
func (i Item) Feeds() int {
	if i.FeedsPerUnit > 0 {
		return i.FeedsPerUnit
	}
	return DefaultFeedsPerUnit
}

// UnitsForGuests returns the number of quantity units needed to feed the
// given guest count, rounding up. Zero or negative guests need zero units.
func (i Item) UnitsForGuests(guests int) int {
	if guests <= 0 {
		return 0
	}
	feeds := i.Feeds()
	return (guests + feeds - 1) / feeds
}
