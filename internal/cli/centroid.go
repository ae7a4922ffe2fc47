package cli

import (
	"context"
	"encoding/json"
	"io"
)

// RunCentroid prints the area-weighted centroid of path. An undefined
// centroid is a result, not an error.
func RunCentroid(ctx context.Context, app *App, path string, jsonOut bool, w io.Writer) error {
	c, err := app.Toolkit.CentroidFile(ctx, path)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	return printerFor(w).Centroid(c)
}
