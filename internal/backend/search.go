package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// SearchResult is one catalogue hit from the remote search endpoint.
type SearchResult struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Price          decimal.Decimal `json:"price"`
}

// Search queries the remote catalogue.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{"q": {query}}

	var resp []SearchResult
	if err := c.do(ctx, http.MethodGet, "/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
