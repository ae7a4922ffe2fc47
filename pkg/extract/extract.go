// Package extract builds a validated point mapping and face list from a TIN document.
package extract

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tinkit/internal/tokenize"
	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/aretw0/tinkit/pkg/xmltree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Extractor reads `F` and `P` elements into a domain.Geometry. It never mutates the document.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the structured logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// File loads path in strict mode and extracts its geometry.
func (e *Extractor) File(path string) (*domain.Geometry, error) {
	doc, err := xmltree.Load(path, xmltree.Strict)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("document loaded", "path", path, "mode", xmltree.Strict)
	return e.Document(doc)
}

// Document extracts the geometry of an already loaded document.
//
// Faces whose text does not hold exactly three IDs are dropped silently and
// only counted in Geometry.FilteredFaces. A point without an integer `id`
// attribute, or whose text is not exactly three real numbers, aborts with a
// *domain.InvalidPointError.
func (e *Extractor) Document(doc xmltree.Document) (*domain.Geometry, error) {
	g := domain.NewGeometry()

	for _, f := range doc.FindByTag(domain.TagFace) {
		ids, err := tokenize.Ints(f.Text())
		if err != nil {
			return nil, &domain.MalformedElementError{Tag: domain.TagFace, Text: f.Text(), Reason: err.Error()}
		}
		if len(ids) != 3 {
			g.FilteredFaces++
			e.logger.Debug("face dropped", "arity", len(ids), "text", f.Text())
			continue
		}
		g.Faces = append(g.Faces, domain.Face{ids[0], ids[1], ids[2]})
	}

	for _, p := range doc.FindByTag(domain.TagPoint) {
		id, v, err := point(p)
		if err != nil {
			return nil, err
		}
		if _, dup := g.Points[id]; dup {
			g.DuplicatePoints++
			e.logger.Debug("duplicate point id, last one wins", "id", id)
		}
		g.Points[id] = v
	}

	return g, nil
}

func point(p xmltree.Element) (int, r3.Vec, error) {
	raw, ok := p.Attr(domain.AttrID)
	if !ok {
		return 0, r3.Vec{}, &domain.InvalidPointError{Element: p.String(), Reason: "missing id attribute"}
	}
	id, err := tokenize.ParseIntStrict(raw)
	if err != nil {
		return 0, r3.Vec{}, &domain.InvalidPointError{Element: p.String(), Reason: err.Error()}
	}

	coords, err := tokenize.Floats(p.Text())
	if err != nil {
		return 0, r3.Vec{}, &domain.InvalidPointError{Element: p.String(), Reason: err.Error()}
	}
	if len(coords) != 3 {
		return 0, r3.Vec{}, &domain.InvalidPointError{
			Element: p.String(),
			Reason:  fmt.Sprintf("expected 3 coordinates, got %d", len(coords)),
		}
	}
	return id, r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
