// Package promo provides a local bloom-filter pre-screen for promo codes.
// Codes that cannot be in the promo set are rejected without a network
// call; codes that pass still require remote validation, since the filter
// admits false positives by construction.
package promo

import (
	"os"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
)

// Promo codes outside these length bounds are never valid; they are
// rejected before the filter is even consulted.
const (
	MinCodeLen = 8
	MaxCodeLen = 10
)

var _ checkout.PromoScreener = (*Screen)(nil)

// Screen answers "might this code be valid" from an in-memory bloom filter.
type Screen struct {
	filter *bloom.BloomFilter
}

// NewScreen wraps an already-built filter.
func NewScreen(filter *bloom.BloomFilter) *Screen {
	return &Screen{filter: filter}
}

// Load reads a promo pack written by WritePack (or cmd/promopack) from disk.
func Load(path string) (*Screen, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open promo pack %s", path)
	}
	defer func() { _ = f.Close() }()

	filter := &bloom.BloomFilter{}
	if _, err := filter.ReadFrom(f); err != nil {
		return nil, errors.Wrapf(err, "read promo pack %s", path)
	}
	return &Screen{filter: filter}, nil
}

// MightContain reports whether the code could be in the promo set. A false
// return is definitive.
func (s *Screen) MightContain(code string) bool {
	code = Normalize(code)
	if len(code) < MinCodeLen || len(code) > MaxCodeLen {
		return false
	}
	return s.filter.TestString(code)
}

// Normalize maps a user-typed code to its canonical form: trimmed and
// upper-cased.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
