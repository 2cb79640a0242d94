package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/swiftfood/checkout-gateway/internal/domain/account"
)

var _ account.Directory = (*Client)(nil)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (u userResponse) toUser() *account.User {
	return &account.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// FindByEmail looks up a consumer account. A 404 maps to
// account.ErrNotFound; every other failure propagates as-is so the caller
// never mistakes an outage for a missing account.
func (c *Client) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	var resp userResponse
	err := c.do(ctx, http.MethodGet, "/users/email/"+url.PathEscape(email), nil, nil, &resp)
	if err != nil {
		var api *APIError
		if errors.As(err, &api) && api.StatusCode == http.StatusNotFound {
			return nil, account.ErrNotFound
		}
		return nil, err
	}
	return resp.toUser(), nil
}

type createConsumerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// CreateConsumer registers a new consumer account.
func (c *Client) CreateConsumer(ctx context.Context, p account.CreateParams) (*account.User, error) {
	req := createConsumerRequest{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Password: p.Password,
	}

	var resp userResponse
	if err := c.do(ctx, http.MethodPost, "/consumer-user", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.toUser(), nil
}
