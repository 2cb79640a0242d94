package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftfood/checkout-gateway/internal/domain/cart"
)

func TestValidateSession(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		evtTime string
		field   string
	}{
		{name: "valid", date: "2026-09-14", evtTime: "12:30"},
		{name: "midnight", date: "2026-01-01", evtTime: "00:00"},
		{name: "bad date shape", date: "14/09/2026", evtTime: "12:30", field: "date"},
		{name: "month out of range", date: "2025-13-01", evtTime: "12:30", field: "date"},
		{name: "day out of range", date: "2026-02-30", evtTime: "12:30", field: "date"},
		{name: "bad time shape", date: "2026-09-14", evtTime: "9:30", field: "time"},
		{name: "hour out of range", date: "2026-09-14", evtTime: "25:00", field: "time"},
		{name: "minute out of range", date: "2026-09-14", evtTime: "12:61", field: "time"},
		{name: "empty date", date: "", evtTime: "12:30", field: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSession(cart.MealSession{
				Name: "Lunch",
				Date: tt.date,
				Time: tt.evtTime,
			})

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var verr *SessionValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Lunch", verr.Session)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateSession_FallsBackToID(t *testing.T) {
	err := ValidateSession(cart.MealSession{ID: "s-1", Date: "not-a-date", Time: "12:00"})

	var verr *SessionValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "s-1", verr.Session)
	assert.Contains(t, verr.Error(), `session "s-1"`)
}

func TestValidateSessions_FailFast(t *testing.T) {
	sessions := []cart.MealSession{
		{Name: "Breakfast", Date: "2026-09-14", Time: "08:00"},
		{Name: "Lunch", Date: "2025-13-01", Time: "12:30"},
		{Name: "Dinner", Date: "also-bad", Time: "19:00"},
	}

	err := ValidateSessions(sessions)

	var verr *SessionValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Lunch", verr.Session)
}
