// Package scale rewrites the point and face text of a TIN document in place.
//
// Faces are re-serialized as single-space separated integers. Points get their
// first two coordinates (X, Y) multiplied by a factor and rendered with
// HorizontalPrecision decimals, while Z keeps its value and is rendered with
// VerticalPrecision decimals.
package scale

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/tinkit/internal/tokenize"
	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/aretw0/tinkit/pkg/xmltree"
)

const (
	// HorizontalPrecision is the number of decimals written for scaled X and Y.
	HorizontalPrecision = 12
	// VerticalPrecision is the number of decimals written for Z.
	VerticalPrecision = 4
)

// NormalizeFace re-serializes face text as its integer tokens joined by one space.
// Any arity is accepted; text without tokens yields "". Applying it to its own
// output returns the same string.
func NormalizeFace(text string) (string, error) {
	ids, err := tokenize.Ints(text)
	if err != nil {
		return "", &domain.MalformedElementError{Tag: domain.TagFace, Text: text, Reason: err.Error()}
	}
	return tokenize.JoinInts(ids), nil
}

// FormatPoint scales the X and Y tokens of point text by factor and reformats Z.
// Tokens past the third are validated as real numbers and kept.
func FormatPoint(text string, factor float64) (string, error) {
	coords, err := tokenize.Floats(text)
	if err != nil {
		return "", &domain.MalformedElementError{Tag: domain.TagPoint, Text: text, Reason: err.Error()}
	}
	if len(coords) < 3 {
		return "", &domain.MalformedElementError{
			Tag:    domain.TagPoint,
			Text:   text,
			Reason: fmt.Sprintf("expected at least 3 coordinates, got %d", len(coords)),
		}
	}

	parts := make([]string, 0, len(coords))
	parts = append(parts,
		strconv.FormatFloat(coords[0]*factor, 'f', HorizontalPrecision, 64),
		strconv.FormatFloat(coords[1]*factor, 'f', HorizontalPrecision, 64),
		strconv.FormatFloat(coords[2], 'f', VerticalPrecision, 64),
	)
	for _, extra := range coords[3:] {
		parts = append(parts, strconv.FormatFloat(extra, 'f', -1, 64))
	}
	return strings.Join(parts, " "), nil
}

// Scaler applies a scale factor to every `F` and `P` element of a document,
// wherever they sit in the tree.
type Scaler struct {
	factor float64
	logger *slog.Logger
}

// Option configures a Scaler.
type Option func(*Scaler)

// WithLogger sets the structured logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scaler) {
		s.logger = logger
	}
}

// New creates a Scaler for factor. Zero and negative factors are accepted.
func New(factor float64, opts ...Option) *Scaler {
	s := &Scaler{factor: factor}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Factor returns the configured scale factor.
func (s *Scaler) Factor() float64 {
	return s.factor
}

// Rewrite mutates doc in place. It aborts on the first malformed element; in
// that case doc may already be partially rewritten and must be discarded.
func (s *Scaler) Rewrite(doc xmltree.Document) (domain.ScaleSummary, error) {
	faces := doc.FindByTag(domain.TagFace)
	for i, f := range faces {
		text, err := NormalizeFace(f.Text())
		if err != nil {
			return domain.ScaleSummary{}, fmt.Errorf("face %d: %w", i, err)
		}
		if text == "" {
			continue
		}
		f.SetText(text)
	}

	points := doc.FindByTag(domain.TagPoint)
	for i, p := range points {
		text, err := FormatPoint(p.Text(), s.factor)
		if err != nil {
			return domain.ScaleSummary{}, fmt.Errorf("point %d: %w", i, err)
		}
		p.SetText(text)
	}

	summary := domain.ScaleSummary{
		Surfaces:   len(doc.FindByTag(domain.TagSurface)),
		Breaklines: len(doc.FindByTag(domain.TagBreakline)),
		Points:     len(points),
		Faces:      len(faces),
		Factor:     s.factor,
	}
	s.logger.Debug("document rescaled",
		"factor", s.factor,
		"points", summary.Points,
		"faces", summary.Faces,
	)
	return summary, nil
}
