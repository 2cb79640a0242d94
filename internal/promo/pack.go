package promo

import (
	"bufio"
	"context"
	"os"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

// Defaults for building a promo pack from the marketing code dumps.
const (
	DefaultCapacity = 10_000_000
	DefaultFPR      = 0.001
)

// BuildFromFiles streams gzip-compressed code dumps (one code per line) and
// builds a single bloom filter sized for capacity/fpr. Files are scanned
// concurrently; codes outside the valid length bounds are skipped.
func BuildFromFiles(ctx context.Context, files []string, capacity uint, fpr float64) (*Screen, error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if fpr <= 0 {
		fpr = DefaultFPR
	}

	filter := bloom.NewWithEstimates(capacity, fpr)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range files {
		g.Go(func() error {
			return streamGzFile(ctx, path, func(code string) {
				code = Normalize(code)
				if len(code) < MinCodeLen || len(code) > MaxCodeLen {
					return
				}
				mu.Lock()
				filter.AddString(code)
				mu.Unlock()
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Screen{filter: filter}, nil
}

// WritePack serializes the screen's filter to path.
func (s *Screen) WritePack(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create promo pack %s", path)
	}

	if _, err := s.filter.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write promo pack %s", path)
	}
	return f.Close()
}

// ApproxSize returns the filter's capacity estimate for logging.
func (s *Screen) ApproxSize() uint32 {
	return s.filter.ApproximatedSize()
}

// streamGzFile opens a gzip-compressed file and calls fn for each line.
func streamGzFile(ctx context.Context, path string, fn func(code string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}
