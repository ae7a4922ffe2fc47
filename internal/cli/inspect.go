package cli

import (
	"context"
	"encoding/json"
	"io"
)

// RunInspect prints statistics about the TIN at path.
func RunInspect(ctx context.Context, app *App, path string, jsonOut bool, w io.Writer) error {
	s, err := app.Toolkit.InspectFile(ctx, path)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return printerFor(w).Stats(s)
}
