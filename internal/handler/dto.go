package handler

import (
	"github.com/shopspring/decimal"

	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
	"github.com/swiftfood/checkout-gateway/internal/domain/menu"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

// Request DTOs use the web clients' field names (sessionDate, eventTime,
// isDiscount) rather than this codebase's naming.

type menuItemDTO struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	RestaurantID         string          `json:"restaurantId"`
	RestaurantName       string          `json:"restaurantName"`
	Price                decimal.Decimal `json:"price"`
	DiscountPrice        decimal.Decimal `json:"discountPrice"`
	IsDiscount           bool            `json:"isDiscount"`
	CateringQuantityUnit int             `json:"cateringQuantityUnit"`
	FeedsPerUnit         int             `json:"feedsPerUnit"`
}

type addOnDTO struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type selectedItemDTO struct {
	MenuItem menuItemDTO `json:"menuItem"`
	Quantity int         `json:"quantity"`
	AddOns   []addOnDTO  `json:"addOns,omitempty"`
}

type sessionDTO struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Date                string            `json:"sessionDate"`
	Time                string            `json:"eventTime"`
	Guests              int               `json:"guestCount"`
	SpecialRequirements string            `json:"specialRequirements"`
	Items               []selectedItemDTO `json:"items"`
}

type locationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type contactDTO struct {
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	AddressLine1   string       `json:"addressLine1"`
	AddressLine2   string       `json:"addressLine2"`
	City           string       `json:"city"`
	Postcode       string       `json:"postcode"`
	Location       *locationDTO `json:"location"`
	Organization   string       `json:"organization"`
	BillingAddress string       `json:"billingAddress"`
}

type paymentDTO struct {
	OrganizationWalletID string `json:"organizationWalletId"`
	PaymentMethodID      string `json:"paymentMethodId"`
	PaymentIntentID      string `json:"paymentIntentId"`
}

func (d sessionDTO) toSession() cart.MealSession {
	items := make([]cart.SelectedItem, len(d.Items))
	for i, it := range d.Items {
		addOns := make([]cart.SelectedAddOn, len(it.AddOns))
		for j, a := range it.AddOns {
			addOns[j] = cart.SelectedAddOn{Name: a.Name, Price: a.Price, Quantity: a.Quantity}
		}
		if len(addOns) == 0 {
			addOns = nil
		}
		items[i] = cart.SelectedItem{
			Item: menu.Item{
				ID:                   it.MenuItem.ID,
				Name:                 it.MenuItem.Name,
				RestaurantID:         it.MenuItem.RestaurantID,
				RestaurantName:       it.MenuItem.RestaurantName,
				Price:                it.MenuItem.Price,
				DiscountPrice:        it.MenuItem.DiscountPrice,
				Discounted:           it.MenuItem.IsDiscount,
				CateringQuantityUnit: it.MenuItem.CateringQuantityUnit,
				FeedsPerUnit:         it.MenuItem.FeedsPerUnit,
			},
			Quantity: it.Quantity,
			AddOns:   addOns,
		}
	}
	return cart.MealSession{
		ID:                  d.ID,
		Name:                d.Name,
		Date:                d.Date,
		Time:                d.Time,
		Guests:              d.Guests,
		SpecialRequirements: d.SpecialRequirements,
		Items:               items,
	}
}

func toSessions(dtos []sessionDTO) []cart.MealSession {
	out := make([]cart.MealSession, len(dtos))
	for i, d := range dtos {
		out[i] = d.toSession()
	}
	return out
}

func (d locationDTO) toCoordinates() *pricing.Coordinates {
	return &pricing.Coordinates{Lat: d.Lat, Lng: d.Lng}
}

func (d contactDTO) toContact() checkout.ContactInfo {
	c := checkout.ContactInfo{
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Phone:          d.Phone,
		AddressLine1:   d.AddressLine1,
		AddressLine2:   d.AddressLine2,
		City:           d.City,
		Postcode:       d.Postcode,
		Organization:   d.Organization,
		BillingAddress: d.BillingAddress,
	}
	if d.Location != nil {
		c.Location = d.Location.toCoordinates()
	}
	return c
}
