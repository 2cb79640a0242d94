package cart

import "github.com/shopspring/decimal"

// EstimateLine returns the display estimate for a single selected item:
// effective unit price times quantity, plus the add-on lines. The result is
// an estimate only and must never be used as a charge amount; the
// authoritative total always comes from the remote pricing endpoint.
func EstimateLine(sel SelectedItem) decimal.Decimal {
	line := sel.Item.UnitPrice().Mul(decimal.NewFromInt(int64(sel.Quantity)))
	for _, a := range sel.AddOns {
		line = line.Add(a.Price.Mul(decimal.NewFromInt(int64(a.Quantity))))
	}
	return line
}

// EstimateSubtotal sums EstimateLine over the selection and rounds to two
// decimal places.
func EstimateSubtotal(items []SelectedItem) decimal.Decimal {
	sum := decimal.Zero
	for _, sel := range items {
		sum = sum.Add(EstimateLine(sel))
	}
	return sum.Round(2)
}

// EstimateSessions sums the estimates across all non-empty sessions.
func EstimateSessions(sessions []MealSession) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range sessions {
		sum = sum.Add(EstimateSubtotal(s.Items))
	}
	return sum.Round(2)
}
