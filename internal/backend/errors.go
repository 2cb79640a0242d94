package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx backend response that is not a delivery-zone
// rejection. Message is the server-provided message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// DeliveryZoneError marks the distinguished rejection for addresses outside
// the serviceable area. Callers show an actionable "outside our delivery
// zone" message instead of a generic retry prompt.
type DeliveryZoneError struct {
	Message string
}

func (e *DeliveryZoneError) Error() string {
	return "outside delivery zone: " + e.Message
}

// errorBody is the shape of structured backend error responses. Message
// arrives either as a string or as an array of strings.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

// classify turns a non-2xx response into a typed error. Messages matching a
// configured zone marker become DeliveryZoneError; everything else is an
// APIError carrying the server message when available.
func (c *Client) classify(status int, body []byte) error {
	msg := parseErrorMessage(body)
	if msg == "" {
		msg = "request failed"
	}
	if c.isZoneViolation(msg) {
		return &DeliveryZoneError{Message: msg}
	}
	return &APIError{StatusCode: status, Message: msg}
}

// isZoneViolation reports whether the message mentions one of the
// delivery-zone markers.
func (c *Client) isZoneViolation(msg string) bool {
	for _, marker := range c.zoneMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// parseErrorMessage extracts the human-readable message from a structured
// error body. Unparseable bodies yield an empty string.
func parseErrorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Message) > 0 {
		var s string
		if err := json.Unmarshal(eb.Message, &s); err == nil {
			return s
		}
		var list []string
		if err := json.Unmarshal(eb.Message, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}
	return eb.Error
}
