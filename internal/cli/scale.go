package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/tinkit/internal/presentation/tui"
	"github.com/aretw0/tinkit/internal/tokenize"
)

// ScaleOptions are the arguments of the scale command.
type ScaleOptions struct {
	Input  string
	Factor string // Raw command-line token
	Output string
	Quiet  bool
}

// ParseFactor converts the raw factor argument into a finite real number.
func ParseFactor(raw string) (float64, error) {
	f, err := tokenize.ParseFloatStrict(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid scale factor: %w", err)
	}
	return f, nil
}

// RunScale rescales opts.Input into opts.Output and prints the summary to w.
func RunScale(ctx context.Context, app *App, opts ScaleOptions, w io.Writer) error {
	factor, err := ParseFactor(opts.Factor)
	if err != nil {
		return err
	}

	summary, err := app.Toolkit.ScaleFile(ctx, opts.Input, factor, opts.Output)
	if err != nil {
		return err
	}
	app.Logger.Debug("document scaled", "input", opts.Input, "output", opts.Output, "points", summary.Points)

	if opts.Quiet {
		return nil
	}
	return printerFor(w).ScaleSummary(summary)
}

func printerFor(w io.Writer) *tui.Printer {
	return tui.NewPrinter(w)
}
