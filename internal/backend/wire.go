package backend

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

// Wire types mirror the backend's JSON field names (sessionDate, eventTime,
// guestCount) rather than this codebase's naming.

type addOnPayload struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type linePayload struct {
	MenuItemID string         `json:"menuItemId"`
	Quantity   int            `json:"quantity"`
	AddOns     []addOnPayload `json:"addOns,omitempty"`
}

type restaurantPayload struct {
	RestaurantID   string        `json:"restaurantId"`
	RestaurantName string        `json:"restaurantName"`
	Items          []linePayload `json:"items"`
}

type sessionPayload struct {
	Name                string              `json:"name,omitempty"`
	Date                string              `json:"sessionDate"`
	Time                string              `json:"eventTime"`
	Guests              int                 `json:"guestCount"`
	SpecialRequirements string              `json:"specialRequirements,omitempty"`
	Restaurants         []restaurantPayload `json:"restaurants"`
}

type locationPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type contactPayload struct {
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	AddressLine1   string           `json:"addressLine1"`
	AddressLine2   string           `json:"addressLine2,omitempty"`
	City           string           `json:"city"`
	Postcode       string           `json:"postcode"`
	Location       *locationPayload `json:"location,omitempty"`
	Organization   string           `json:"organization,omitempty"`
	BillingAddress string           `json:"billingAddress,omitempty"`
}

// groupPayload regroups the selection by restaurant and emits groups in
// sorted key order so identical selections serialize identically.
func groupPayload(items []cart.SelectedItem) []restaurantPayload {
	groups := cart.GroupByRestaurant(items)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]restaurantPayload, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		lines := make([]linePayload, len(g.Items))
		for i, li := range g.Items {
			addOns := make([]addOnPayload, len(li.AddOns))
			for j, a := range li.AddOns {
				addOns[j] = addOnPayload{Name: a.Name, Price: a.Price, Quantity: a.Quantity}
			}
			if len(addOns) == 0 {
				addOns = nil
			}
			lines[i] = linePayload{MenuItemID: li.MenuItemID, Quantity: li.Quantity, AddOns: addOns}
		}
		out = append(out, restaurantPayload{
			RestaurantID:   k,
			RestaurantName: g.RestaurantName,
			Items:          lines,
		})
	}
	return out
}

func sessionsPayload(sessions []cart.MealSession) []sessionPayload {
	out := make([]sessionPayload, len(sessions))
	for i, s := range sessions {
		out[i] = sessionPayload{
			Name:                s.Name,
			Date:                s.Date,
			Time:                s.Time,
			Guests:              s.Guests,
			SpecialRequirements: s.SpecialRequirements,
			Restaurants:         groupPayload(s.Items),
		}
	}
	return out
}

func toLocationPayload(c *pricing.Coordinates) *locationPayload {
	if c == nil {
		return nil
	}
	return &locationPayload{Lat: c.Lat, Lng: c.Lng}
}

func toContactPayload(c checkout.ContactInfo) contactPayload {
	return contactPayload{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		AddressLine1:   c.AddressLine1,
		AddressLine2:   c.AddressLine2,
		City:           c.City,
		Postcode:       c.Postcode,
		Location:       toLocationPayload(c.Location),
		Organization:   c.Organization,
		BillingAddress: c.BillingAddress,
	}
}
