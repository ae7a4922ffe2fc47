package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the tinkit ASCII banner and version to w.
// Colours follow the terminal profile and degrade to plain text when w is not a TTY.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).Profile
	// Earthy gradient, contour-map style
	lines := []termenv.Style{
		termenv.String(" _   _       _    _ _   ").Foreground(p.Color("#a3e635")),
		termenv.String("| |_(_)_ __ | | _(_) |_ ").Foreground(p.Color("#84cc16")),
		termenv.String("| __| | '_ \\| |/ / | __|").Foreground(p.Color("#65a30d")),
		termenv.String("| |_| | | | |   <| | |_ ").Foreground(p.Color("#ca8a04")),
		termenv.String(" \\__|_|_| |_|_|\\_\\_|\\__|").Foreground(p.Color("#a16207")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+strings.TrimSpace(version)).Faint())
}
