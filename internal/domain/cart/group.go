package cart

// UnknownRestaurantKey is the sentinel group key for items whose restaurant
// cannot be resolved. Malformed items are grouped under it rather than
// failing the whole cart, so pricing for the rest of the selection proceeds.
const UnknownRestaurantKey = "unknown"

// LineItem is one selected item inside a restaurant group, reduced to what
// the pricing backend needs.
type LineItem struct {
	MenuItemID string
	Quantity   int
	AddOns     []SelectedAddOn
}

// RestaurantGroup holds one restaurant's share of the selection. Items keep
// their insertion order; this matters for display, not correctness.
type RestaurantGroup struct {
	RestaurantName string
	Items          []LineItem
}

// Grouped maps restaurant ID to that restaurant's line items. No ordering
// is guaranteed across restaurants.
type Grouped map[string]*RestaurantGroup

// GroupByRestaurant partitions the selection by owning restaurant. Every
// input item lands in exactly one group; items with no restaurant reference
// land under UnknownRestaurantKey. Grouping the same unmutated selection
// twice yields structurally identical output.
func GroupByRestaurant(items []SelectedItem) Grouped {
	groups := make(Grouped)
	for _, sel := range items {
		key := sel.Item.RestaurantID
		name := sel.Item.RestaurantName
		if key == "" {
			key = UnknownRestaurantKey
			name = UnknownRestaurantKey
		}

		g, ok := groups[key]
		if !ok {
			g = &RestaurantGroup{RestaurantName: name}
			groups[key] = g
		}
		g.Items = append(g.Items, LineItem{
			MenuItemID: sel.Item.ID,
			Quantity:   sel.Quantity,
			AddOns:     sel.AddOns,
		})
	}
	return groups
}
