package checkout

import (
	"fmt"
	"regexp"
	"time"

	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
)

var (
	dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeShape = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// SessionValidationError names the session that failed validation and the
// offending field. It is raised before any network call so one malformed
// session cannot silently corrupt a multi-session order.
type SessionValidationError struct {
	Session string
	Field   string
	Value   string
}

func (e *SessionValidationError) Error() string {
	return fmt.Sprintf("session %q: invalid %s %q", e.Session, e.Field, e.Value)
}

// ValidateSession checks a session's schedule: the date must match
// YYYY-MM-DD and be a real calendar date, the time must be a valid 24-hour
// HH:MM. The regexp gate keeps the error messages about shape separate
// from out-of-range values like month 13, which the parse step rejects.
func ValidateSession(s cart.MealSession) error {
	name := s.Name
	if name == "" {
		name = s.ID
	}

	if !dateShape.MatchString(s.Date) {
		return &SessionValidationError{Session: name, Field: "date", Value: s.Date}
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return &SessionValidationError{Session: name, Field: "date", Value: s.Date}
	}

	if !timeShape.MatchString(s.Time) {
		return &SessionValidationError{Session: name, Field: "time", Value: s.Time}
	}
	if _, err := time.Parse("15:04", s.Time); err != nil {
		return &SessionValidationError{Session: name, Field: "time", Value: s.Time}
	}

	return nil
}

// ValidateSessions fails fast on the first invalid session.
func ValidateSessions(sessions []cart.MealSession) error {
	for _, s := range sessions {
		if err := ValidateSession(s); err != nil {
			return err
		}
	}
	return nil
}
