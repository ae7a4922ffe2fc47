package tui

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/tinkit/pkg/domain"
	"gonum.org/v1/gonum/spatial/r3"
)

// Printer writes command results either as plain lines or, when Rich is set,
// as markdown rendered by glamour.
type Printer struct {
	Out  io.Writer
	Rich bool

	render func(string) (string, error)
}

// NewPrinter returns a Printer on w, rich when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{Out: w, Rich: IsTerminal(w)}
}

func (p *Printer) markdown(md string) error {
	if p.render == nil {
		p.render = NewRenderer()
	}
	out, err := p.render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.Out, out)
	return err
}

// FormatFactor renders a factor in its shortest round-trip form. Whole numbers
// keep a ".0" and very large or small magnitudes switch to exponent notation,
// so 2 prints as "2.0" and 0.00001 as "1e-05".
func FormatFactor(f float64) string {
	if abs := math.Abs(f); abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ScaleSummary prints the diagnostic lines of a scaling run.
func (p *Printer) ScaleSummary(s domain.ScaleSummary) error {
	if p.Rich {
		var b strings.Builder
		b.WriteString("| Element | Count |\n|---|---:|\n")
		fmt.Fprintf(&b, "| Surfaces | %d |\n", s.Surfaces)
		fmt.Fprintf(&b, "| Breaklines | %d |\n", s.Breaklines)
		fmt.Fprintf(&b, "| Points | %d |\n", s.Points)
		fmt.Fprintf(&b, "| Faces | %d |\n", s.Faces)
		fmt.Fprintf(&b, "\n**Scale factor:** `%s`\n", FormatFactor(s.Factor))
		return p.markdown(b.String())
	}

	_, err := fmt.Fprintf(p.Out,
		"Number of surface: %d\nNumber of breaklines: %d\nNumber of points: %d\nScale factor: %s\n",
		s.Surfaces, s.Breaklines, s.Points, FormatFactor(s.Factor))
	return err
}

// FormatCentroid renders a centroid with the scaler precision, or "undefined".
func FormatCentroid(c domain.Centroid) string {
	v, ok := c.Value()
	if !ok {
		return "centroid: undefined"
	}
	return formatVec(v)
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("%.12f %.12f %.4f", v.X, v.Y, v.Z)
}

// Centroid prints the result of a centroid computation.
func (p *Printer) Centroid(c domain.Centroid) error {
	if p.Rich {
		var b strings.Builder
		if c.Defined {
			fmt.Fprintf(&b, "**Centroid:** `%s`\n\n", formatVec(c.Point))
		} else {
			b.WriteString("**Centroid:** _undefined (zero total area)_\n\n")
		}
		fmt.Fprintf(&b, "Faces: %d, degenerate: %d, total area: %g\n", c.Faces, c.DegenerateFaces, c.TotalArea)
		return p.markdown(b.String())
	}
	_, err := fmt.Fprintln(p.Out, FormatCentroid(c))
	return err
}

// Stats prints an inspection report.
func (p *Printer) Stats(s domain.Stats) error {
	rows := [][2]string{
		{"Points", strconv.Itoa(s.Points)},
		{"Faces", strconv.Itoa(s.Faces)},
		{"Filtered faces", strconv.Itoa(s.FilteredFaces)},
		{"Degenerate faces", strconv.Itoa(s.DegenerateFaces)},
		{"Duplicate point IDs", strconv.Itoa(s.DuplicatePoints)},
		{"Surface area", strconv.FormatFloat(s.SurfaceArea, 'f', 4, 64)},
	}
	if s.Bounds != nil {
		rows = append(rows,
			[2]string{"Min", formatVec(s.Bounds.Min)},
			[2]string{"Max", formatVec(s.Bounds.Max)},
		)
	}

	if p.Rich {
		var b strings.Builder
		b.WriteString("| Metric | Value |\n|---|---:|\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "| %s | %s |\n", r[0], r[1])
		}
		return p.markdown(b.String())
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(p.Out, "%s: %s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return nil
}
