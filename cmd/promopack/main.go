// Command promopack builds the bloom-filter promo pack the gateway uses to
// pre-screen promo codes. Input is one or more gzip-compressed dumps of
// valid codes, one code per line; output is a single filter file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/swiftfood/checkout-gateway/internal/promo"
)

func main() {
	var (
		inputs   string
		output   string
		capacity uint
		fpr      float64
	)

	flag.StringVar(&inputs, "in", "", "comma-separated gzip code dumps")
	flag.StringVar(&output, "out", "promopack.bloom", "output pack path")
	flag.UintVar(&capacity, "capacity", promo.DefaultCapacity, "expected number of codes")
	flag.Float64Var(&fpr, "fpr", promo.DefaultFPR, "target false positive rate")
	flag.Parse()

	if inputs == "" {
		slog.Error("at least one input file is required: set -in")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	files := strings.Split(inputs, ",")
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			slog.Error("input file not accessible", slog.String("file", f), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	slog.Info("building promo pack", slog.Int("files", len(files)), slog.Uint64("capacity", uint64(capacity)))

	screen, err := promo.BuildFromFiles(ctx, files, capacity, fpr)
	if err != nil {
		slog.Error("build promo pack failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := screen.WritePack(output); err != nil {
		slog.Error("write promo pack failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("promo pack written",
		slog.String("path", output),
		slog.Uint64("approx_codes", uint64(screen.ApproxSize())),
	)
}
