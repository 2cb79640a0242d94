package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/swiftfood/checkout-gateway/internal/domain/account"
	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

// ErrNoSessions is returned when every session in a request is empty.
var ErrNoSessions = errors.New("no sessions with items")

// Service drives the checkout pipeline against the injected backend
// collaborators.
type Service struct {
	accounts *account.Resolver
	pricer   Pricer
	promos   PromoValidator
	orders   OrderGateway
	screener PromoScreener
	newRef   func() string
}

// NewService creates a checkout Service. screener may be nil; promo codes
// then go straight to remote validation.
func NewService(
	accounts *account.Resolver,
	pricer Pricer,
	promos PromoValidator,
	orders OrderGateway,
	screener PromoScreener,
) *Service {
	return &Service{
		accounts: accounts,
		pricer:   pricer,
		promos:   promos,
		orders:   orders,
		screener: screener,
		newRef:   func() string { return uuid.New().String() },
	}
}

// Quote validates the session set, computes the local display estimate, and
// fetches the authoritative price. A pricing rejection (including
// out-of-delivery-zone) comes back inside the Result, not as an error;
// errors are reserved for transport and validation failures.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	sessions := cart.Submittable(req.Sessions)
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}
	if err := ValidateSessions(sessions); err != nil {
		return nil, err
	}

	estimate := cart.EstimateSessions(sessions)

	result, err := s.pricer.PriceSessions(ctx, sessions, req.PromoCodes, req.Delivery)
	if err != nil {
		return nil, errors.Wrap(err, "price sessions")
	}

	return &Quote{Estimate: estimate, Result: result}, nil
}

// CheckPromo validates a promo code against the session set. When a local
// screener is configured and rules the code out, the remote call is
// skipped entirely.
func (s *Service) CheckPromo(ctx context.Context, code string, sessions []cart.MealSession) (pricing.PromoCheck, error) {
	if s.screener != nil && !s.screener.MightContain(code) {
		return pricing.PromoCheck{Message: "invalid promo code"}, nil
	}

	check, err := s.promos.ValidatePromo(ctx, code, cart.Submittable(sessions))
	if err != nil {
		return pricing.PromoCheck{}, errors.Wrap(err, "validate promo")
	}
	return check, nil
}

// Submit places the order: sessions are validated fail-fast, the consumer
// account is resolved (created only when truly absent), and the draft is
// handed to the order gateway. The legacy top-level event date and time are
// mirrored from the first session.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Confirmation, error) {
	sessions := cart.Submittable(req.Sessions)
	if len(sessions) == 0 {
		return nil, ErrNoSessions
	}
	if err := ValidateSessions(sessions); err != nil {
		return nil, err
	}

	user, err := s.accounts.Resolve(ctx, req.Contact.FullName(), req.Contact.Email, req.Contact.Phone)
	if err != nil {
		return nil, errors.Wrap(err, "resolve account")
	}

	draft := OrderDraft{
		UserID:          user.ID,
		ClientReference: s.newRef(),
		Contact:         req.Contact,
		Sessions:        sessions,
		PromoCodes:      req.PromoCodes,
		Payment:         req.Payment,
		EventDate:       sessions[0].Date,
		EventTime:       sessions[0].Time,
	}

	conf, err := s.orders.PlaceOrder(ctx, draft)
	if err != nil {
		return nil, errors.Wrap(err, "place order")
	}
	return conf, nil
}
