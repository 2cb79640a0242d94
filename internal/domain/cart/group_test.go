package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftfood/checkout-gateway/internal/domain/menu"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func item(id, restID, restName string, price string) menu.Item {
	return menu.Item{
		ID:             id,
		Name:           "item " + id,
		RestaurantID:   restID,
		RestaurantName: restName,
		Price:          d(price),
	}
}

func TestGroupByRestaurant_PartitionsExactly(t *testing.T) {
	items := []SelectedItem{
		{Item: item("m1", "r1", "Thai Corner", "10"), Quantity: 2},
		{Item: item("m2", "r2", "Bombay Hall", "12"), Quantity: 1},
		{Item: item("m3", "r1", "Thai Corner", "8"), Quantity: 3},
		{Item: item("m4", "r2", "Bombay Hall", "5"), Quantity: 1},
	}

	groups := GroupByRestaurant(items)

	require.Len(t, groups, 2)

	// Every input item appears in exactly one group.
	total := 0
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, li := range g.Items {
			total++
			assert.False(t, seen[li.MenuItemID], "item %s duplicated", li.MenuItemID)
			seen[li.MenuItemID] = true
		}
	}
	assert.Equal(t, len(items), total)

	assert.Equal(t, "Thai Corner", groups["r1"].RestaurantName)
	assert.Equal(t, "Bombay Hall", groups["r2"].RestaurantName)
}

func TestGroupByRestaurant_PreservesItemOrder(t *testing.T) {
	items := []SelectedItem{
		{Item: item("m3", "r1", "Thai Corner", "8"), Quantity: 1},
		{Item: item("m1", "r1", "Thai Corner", "10"), Quantity: 1},
		{Item: item("m2", "r1", "Thai Corner", "12"), Quantity: 1},
	}

	groups := GroupByRestaurant(items)

	require.Len(t, groups["r1"].Items, 3)
	assert.Equal(t, "m3", groups["r1"].Items[0].MenuItemID)
	assert.Equal(t, "m1", groups["r1"].Items[1].MenuItemID)
	assert.Equal(t, "m2", groups["r1"].Items[2].MenuItemID)
}

func TestGroupByRestaurant_UnknownRestaurantSentinel(t *testing.T) {
	items := []SelectedItem{
		{Item: item("m1", "r1", "Thai Corner", "10"), Quantity: 1},
		{Item: item("m2", "", "", "12"), Quantity: 1},
	}

	groups := GroupByRestaurant(items)

	require.Len(t, groups, 2)
	require.Contains(t, groups, UnknownRestaurantKey)
	assert.Equal(t, "m2", groups[UnknownRestaurantKey].Items[0].MenuItemID)
	// The malformed item does not block the resolvable one.
	assert.Equal(t, "m1", groups["r1"].Items[0].MenuItemID)
}

func TestGroupByRestaurant_CarriesAddOns(t *testing.T) {
	items := []SelectedItem{
		{
			Item:     item("m1", "r1", "Thai Corner", "10"),
			Quantity: 2,
			AddOns: []SelectedAddOn{
				{Name: "extra rice", Price: d("2.50"), Quantity: 2},
			},
		},
	}

	groups := GroupByRestaurant(items)

	require.Len(t, groups["r1"].Items, 1)
	li := groups["r1"].Items[0]
	require.Len(t, li.AddOns, 1)
	assert.Equal(t, "extra rice", li.AddOns[0].Name)
	assert.Equal(t, 2, li.AddOns[0].Quantity)
}

func TestGroupByRestaurant_Deterministic(t *testing.T) {
	items := []SelectedItem{
		{Item: item("m1", "r1", "Thai Corner", "10"), Quantity: 2},
		{Item: item("m2", "r2", "Bombay Hall", "12"), Quantity: 1},
		{Item: item("m3", "", "", "7"), Quantity: 4},
	}

	first := GroupByRestaurant(items)
	second := GroupByRestaurant(items)

	assert.Equal(t, first, second)
}

func TestGroupByRestaurant_Empty(t *testing.T) {
	assert.Empty(t, GroupByRestaurant(nil))
}

func TestSubmittable_DropsEmptySessions(t *testing.T) {
	sessions := []MealSession{
		{ID: "s1", Items: []SelectedItem{{Item: item("m1", "r1", "Thai Corner", "10"), Quantity: 1}}},
		{ID: "s2"},
		{ID: "s3", Items: []SelectedItem{{Item: item("m2", "r1", "Thai Corner", "8"), Quantity: 2}}},
	}

	got := Submittable(sessions)

	require.Len(t, got, 2)
	assert.Equal(t, "s1", got[0].ID)
	assert.Equal(t, "s3", got[1].ID)
}
