package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftfood/checkout-gateway/internal/backend"
	"github.com/swiftfood/checkout-gateway/internal/domain/account"
	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type pricerMock struct {
	result pricing.Result
	err    error

	gotDelivery *pricing.Coordinates
}

func (m *pricerMock) PriceSessions(_ context.Context, _ []cart.MealSession, _ []string, delivery *pricing.Coordinates) (pricing.Result, error) {
	m.gotDelivery = delivery
	return m.result, m.err
}

type promoMock struct {
	check pricing.PromoCheck
	err   error
}

func (m *promoMock) ValidatePromo(context.Context, string, []cart.MealSession) (pricing.PromoCheck, error) {
	return m.check, m.err
}

type gatewayMock struct {
	conf *checkout.Confirmation
	err  error
}

func (m *gatewayMock) PlaceOrder(context.Context, checkout.OrderDraft) (*checkout.Confirmation, error) {
	return m.conf, m.err
}

type directoryMock struct{}

func (directoryMock) FindByEmail(_ context.Context, email string) (*account.User, error) {
	return &account.User{ID: "u-1", Email: email}, nil
}

func (directoryMock) CreateConsumer(context.Context, account.CreateParams) (*account.User, error) {
	return nil, account.ErrNotFound
}

type geocoderMock struct {
	coords pricing.Coordinates
	err    error
}

func (m *geocoderMock) Resolve(context.Context, string) (pricing.Coordinates, error) {
	return m.coords, m.err
}

type searcherMock struct {
	results []backend.SearchResult
	err     error
}

func (m *searcherMock) Search(context.Context, string) ([]backend.SearchResult, error) {
	return m.results, m.err
}

type fixture struct {
	pricer   *pricerMock
	promos   *promoMock
	orders   *gatewayMock
	geocoder *geocoderMock
	searcher *searcherMock
	mux      *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		pricer:   &pricerMock{},
		promos:   &promoMock{},
		orders:   &gatewayMock{},
		geocoder: &geocoderMock{},
		searcher: &searcherMock{},
	}
	svc := checkout.NewService(account.NewResolver(directoryMock{}), f.pricer, f.promos, f.orders, nil)
	f.mux = http.NewServeMux()
	New(svc, f.geocoder, f.searcher).Register(f.mux)
	return f
}

func (f *fixture) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

const quoteBody = `{
	"sessions": [{
		"name": "Lunch",
		"sessionDate": "2026-09-14",
		"eventTime": "12:30",
		"guestCount": 20,
		"items": [{
			"menuItem": {"id": "i-1", "restaurantId": "r-1", "price": "10"},
			"quantity": 3
		}]
	}]
}`

func TestHandleQuote(t *testing.T) {
	f := newFixture(t)
	f.pricer.result = pricing.Priced(pricing.Breakdown{
		Subtotal:    d("30.00"),
		DeliveryFee: d("4.50"),
		Total:       d("34.50"),
	})

	rec := f.post(t, "/api/quote", quoteBody)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[struct {
		Estimate  decimal.Decimal            `json:"estimate"`
		IsValid   bool                       `json:"isValid"`
		Breakdown map[string]decimal.Decimal `json:"breakdown"`
	}](t, rec)
	assert.True(t, resp.Estimate.Equal(d("30.00")))
	assert.True(t, resp.IsValid)
	assert.True(t, resp.Breakdown["total"].Equal(d("34.50")))
}

func TestHandleQuote_ZoneRejection(t *testing.T) {
	f := newFixture(t)
	f.pricer.result = pricing.Rejected("Sorry, we only deliver within London", true)

	rec := f.post(t, "/api/quote", quoteBody)
	require.Equal(t, http.StatusOK, rec.Code, "a rejection is a quote outcome, not an HTTP failure")

	resp := decodeBody[struct {
		IsValid             bool   `json:"isValid"`
		Message             string `json:"message"`
		OutsideDeliveryZone bool   `json:"outsideDeliveryZone"`
	}](t, rec)
	assert.False(t, resp.IsValid)
	assert.True(t, resp.OutsideDeliveryZone)
	assert.Contains(t, resp.Message, "London")
}

func TestHandleQuote_GeocodesAddress(t *testing.T) {
	f := newFixture(t)
	f.geocoder.coords = pricing.Coordinates{Lat: 51.5, Lng: -0.12}
	f.pricer.result = pricing.Priced(pricing.Breakdown{Total: d("30.00")})

	body := strings.TrimSuffix(quoteBody, "}") + `, "deliveryAddress": "10 Downing St"}`
	rec := f.post(t, "/api/quote", body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, f.pricer.gotDelivery)
	assert.InDelta(t, 51.5, f.pricer.gotDelivery.Lat, 1e-9)
}

func TestHandleQuote_ExplicitLocationSkipsGeocoder(t *testing.T) {
	f := newFixture(t)
	f.geocoder.err = assert.AnError
	f.pricer.result = pricing.Priced(pricing.Breakdown{Total: d("30.00")})

	body := strings.TrimSuffix(quoteBody, "}") + `, "deliveryLocation": {"lat": 51.5, "lng": -0.12}}`
	rec := f.post(t, "/api/quote", body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, f.pricer.gotDelivery)
	assert.InDelta(t, -0.12, f.pricer.gotDelivery.Lng, 1e-9)
}

func TestHandleQuote_InvalidSession(t *testing.T) {
	f := newFixture(t)

	body := strings.Replace(quoteBody, "2026-09-14", "2025-13-01", 1)
	rec := f.post(t, "/api/quote", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeBody[struct {
		Message string `json:"message"`
	}](t, rec)
	assert.Contains(t, resp.Message, "Lunch")
}

func TestHandleQuote_NoSessions(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/quote", `{"sessions": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuote_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/quote", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const submitBody = `{
	"contact": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "phone": "07123456789"},
	"sessions": [{
		"name": "Lunch",
		"sessionDate": "2026-09-14",
		"eventTime": "12:30",
		"items": [{
			"menuItem": {"id": "i-1", "restaurantId": "r-1", "price": "10"},
			"quantity": 3
		}]
	}]
}`

func TestHandleSubmit(t *testing.T) {
	f := newFixture(t)
	f.orders.conf = &checkout.Confirmation{OrderID: "ord-1", Total: d("34.50")}

	rec := f.post(t, "/api/orders", submitBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody[struct {
		OrderID string          `json:"orderId"`
		Total   decimal.Decimal `json:"total"`
	}](t, rec)
	assert.Equal(t, "ord-1", resp.OrderID)
	assert.True(t, resp.Total.Equal(d("34.50")))
}

func TestHandleSubmit_RequiresEmail(t *testing.T) {
	f := newFixture(t)

	body := strings.Replace(submitBody, `"email": "jane@example.com", `, "", 1)
	rec := f.post(t, "/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSubmit_UpstreamFault(t *testing.T) {
	f := newFixture(t)
	f.orders.err = &backend.APIError{StatusCode: http.StatusInternalServerError, Message: "backend down"}

	rec := f.post(t, "/api/orders", submitBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandlePromoCheck(t *testing.T) {
	f := newFixture(t)
	f.promos.check = pricing.PromoCheck{Valid: true, Discount: d("5.00")}

	rec := f.post(t, "/api/promotions/check", `{"code": "HAPPYHRS", "sessions": []}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[struct {
		IsValid  bool            `json:"isValid"`
		Discount decimal.Decimal `json:"discount"`
	}](t, rec)
	assert.True(t, resp.IsValid)
	assert.True(t, resp.Discount.Equal(d("5.00")))
}

func TestHandlePromoCheck_RequiresCode(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/api/promotions/check", `{"code": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch(t *testing.T) {
	f := newFixture(t)
	f.searcher.results = []backend.SearchResult{{ID: "i-1", Name: "Pad Thai"}}

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=thai", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[[]backend.SearchResult](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, "Pad Thai", resp[0].Name)
}

func TestHandleSearch_RequiresQuery(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
