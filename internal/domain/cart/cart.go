// Package cart models the in-flight checkout selection: items picked from
// the catalogue, optionally partitioned into meal sessions, together with
// the grouping and estimation helpers the pricing pipeline is built on.
//
// Nothing in this package is authoritative. The selection lives only for
// the duration of a checkout; pricing and order state belong to the remote
// backend.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/menu"
)

// SelectedAddOn is an add-on chosen under a selected item. It has no
// identity of its own beyond its parent line.
type SelectedAddOn struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// SelectedItem pairs a catalogue item with a chosen quantity. Quantity is
// expressed in backend portion units, not guest count.
type SelectedItem struct {
	Item     menu.Item
	Quantity int
	AddOns   []SelectedAddOn
}

// MealSession is a named delivery occasion with its own schedule and an
// ordered selection of items. Zero or more sessions compose one order.
type MealSession struct {
	ID                  string
	Name                string
	Date                string // YYYY-MM-DD
	Time                string // HH:MM, 24-hour
	Guests              int
	SpecialRequirements string
	Items               []SelectedItem
}

// HasItems reports whether the session carries at least one selected item.
func (s MealSession) HasItems() bool {
	return len(s.Items) > 0
}

// Submittable filters out sessions with no items. Empty sessions are
// excluded from pricing and submission rather than rejected.
func Submittable(sessions []MealSession) []MealSession {
	out := make([]MealSession, 0, len(sessions))
	for _, s := range sessions {
		if s.HasItems() {
			out = append(out, s)
		}
	}
	return out
}

// AllItems flattens the sessions' selections into a single list, preserving
// session order and item order within each session.
func AllItems(sessions []MealSession) []SelectedItem {
	var out []SelectedItem
	for _, s := range sessions {
		out = append(out, s.Items...)
	}
	return out
}
