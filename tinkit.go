package tinkit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/aretw0/tinkit/pkg/extract"
	"github.com/aretw0/tinkit/pkg/geometry"
	"github.com/aretw0/tinkit/pkg/observability"
	"github.com/aretw0/tinkit/pkg/ports"
	"github.com/aretw0/tinkit/pkg/scale"
	"github.com/aretw0/tinkit/pkg/xmltree"
)

// ErrInvalidFactor is returned when a scale factor is NaN or infinite.
var ErrInvalidFactor = errors.New("scale factor must be a finite real number")

// Toolkit is the high-level entry point of the library.
// It ties the loader, scaler, extractor and centroid calculator together and
// adds optional logging, metrics and caching. Safe for concurrent use.
type Toolkit struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	cache   ports.CentroidCache
}

// Option defines a functional option for configuring the Toolkit.
type Option func(*Toolkit)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) {
		t.logger = logger
	}
}

// WithMetrics records every operation in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(t *Toolkit) {
		t.metrics = m
	}
}

// WithCache makes Centroid consult c before computing.
func WithCache(c ports.CentroidCache) Option {
	return func(t *Toolkit) {
		t.cache = c
	}
}

// New creates a Toolkit. Without options it logs nothing, records nothing and caches nothing.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return t
}

func (t *Toolkit) observe(op string, start time.Time, err error) {
	t.metrics.Observe(op, domain.Kind(err), time.Since(start))
	if err != nil {
		t.logger.Debug("operation failed", "operation", op, "kind", domain.Kind(err), "error", err)
	}
}

// ScaleFile rescales the TIN at inPath and writes it to outPath.
// The input is fully parsed and rewritten before outPath is opened, so a
// malformed input never creates or truncates the output file.
func (t *Toolkit) ScaleFile(ctx context.Context, inPath string, factor float64, outPath string) (summary domain.ScaleSummary, err error) {
	start := time.Now()
	defer func() { t.observe(observability.OpScale, start, err) }()

	if err := checkFactor(factor); err != nil {
		return domain.ScaleSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ScaleSummary{}, err
	}

	doc, err := xmltree.Load(inPath, xmltree.Permissive)
	if err != nil {
		return domain.ScaleSummary{}, err
	}
	t.logger.Debug("document loaded", "path", inPath, "mode", xmltree.Permissive)

	summary, err = t.rewrite(doc, factor)
	if err != nil {
		return domain.ScaleSummary{}, err
	}

	out, err := doc.Serialize()
	if err != nil {
		return domain.ScaleSummary{}, fmt.Errorf("failed to serialize document: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		return domain.ScaleSummary{}, fmt.Errorf("failed to write output: %w", err)
	}
	return summary, nil
}

// Scale is ScaleFile for in-memory streams. Nothing is written to w on error.
func (t *Toolkit) Scale(ctx context.Context, r io.Reader, factor float64, w io.Writer) (summary domain.ScaleSummary, err error) {
	start := time.Now()
	defer func() { t.observe(observability.OpScale, start, err) }()

	if err := checkFactor(factor); err != nil {
		return domain.ScaleSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ScaleSummary{}, err
	}

	doc, err := xmltree.Parse(r, xmltree.Permissive)
	if err != nil {
		return domain.ScaleSummary{}, err
	}

	summary, err = t.rewrite(doc, factor)
	if err != nil {
		return domain.ScaleSummary{}, err
	}
	if _, err := doc.WriteTo(w); err != nil {
		return domain.ScaleSummary{}, fmt.Errorf("failed to write output: %w", err)
	}
	return summary, nil
}

func (t *Toolkit) rewrite(doc xmltree.Document, factor float64) (domain.ScaleSummary, error) {
	summary, err := scale.New(factor, scale.WithLogger(t.logger)).Rewrite(doc)
	if err != nil {
		return domain.ScaleSummary{}, err
	}
	t.metrics.AddPointsScaled(summary.Points)
	return summary, nil
}

func checkFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return ErrInvalidFactor
	}
	return nil
}

// ExtractFile builds the point mapping and face list of the TIN at path.
func (t *Toolkit) ExtractFile(ctx context.Context, path string) (g *domain.Geometry, err error) {
	start := time.Now()
	defer func() { t.observe(observability.OpExtract, start, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g, err = extract.New(extract.WithLogger(t.logger)).File(path)
	if err != nil {
		return nil, err
	}
	t.metrics.AddFacesFiltered(g.FilteredFaces)
	return g, nil
}

// Extract is ExtractFile for an in-memory document.
func (t *Toolkit) Extract(ctx context.Context, data []byte) (g *domain.Geometry, err error) {
	start := time.Now()
	defer func() { t.observe(observability.OpExtract, start, err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.extract(data)
}

func (t *Toolkit) extract(data []byte) (*domain.Geometry, error) {
	doc, err := xmltree.ParseBytes(data, xmltree.Strict)
	if err != nil {
		return nil, err
	}
	g, err := extract.New(extract.WithLogger(t.logger)).Document(doc)
	if err != nil {
		return nil, err
	}
	t.metrics.AddFacesFiltered(g.FilteredFaces)
	return g, nil
}

// CentroidFile computes the area-weighted centroid of the TIN at path.
func (t *Toolkit) CentroidFile(ctx context.Context, path string) (domain.Centroid, error) {
	data, err := readFile(path)
	if err != nil {
		t.observe(observability.OpCentroid, time.Now(), err)
		return domain.Centroid{}, err
	}
	c, err := t.Centroid(ctx, data)
	return c, withPath(err, path)
}

// Centroid computes the area-weighted centroid of an in-memory document.
// When a cache is configured the result is looked up and stored under the
// SHA-256 of data. Cache failures are logged and never fail the call.
func (t *Toolkit) Centroid(ctx context.Context, data []byte) (c domain.Centroid, err error) {
	start := time.Now()
	defer func() { t.observe(observability.OpCentroid, start, err) }()

	if err := ctx.Err(); err != nil {
		return domain.Centroid{}, err
	}

	key := Digest(data)
	if t.cache != nil {
		cached, err := t.cache.Get(ctx, key)
		switch {
		case err == nil:
			t.metrics.CacheHit()
			t.logger.Debug("centroid cache hit", "key", key)
			return cached, nil
		case errors.Is(err, domain.ErrCacheMiss):
			t.metrics.CacheMiss()
			t.logger.Debug("centroid cache miss", "key", key)
		default:
			t.metrics.CacheError()
			t.logger.Warn("centroid cache lookup failed", "key", key, "error", err)
		}
	}

	g, err := t.extract(data)
	if err != nil {
		return domain.Centroid{}, err
	}
	c, err = geometry.WeightedCentroid(g.Points, g.Faces)
	if err != nil {
		return domain.Centroid{}, err
	}
	if c.DegenerateFaces > 0 {
		t.logger.Debug("degenerate faces skipped", "count", c.DegenerateFaces)
	}
	t.metrics.AddDegenerateFaces(c.DegenerateFaces)

	if t.cache != nil {
		if err := t.cache.Put(ctx, key, c); err != nil {
			t.metrics.CacheError()
			t.logger.Warn("centroid cache store failed", "key", key, "error", err)
		}
	}
	return c, nil
}

// InspectFile reports statistics about the TIN at path.
func (t *Toolkit) InspectFile(ctx context.Context, path string) (domain.Stats, error) {
	data, err := readFile(path)
	if err != nil {
		t.observe(observability.OpInspect, time.Now(), err)
		return domain.Stats{}, err
	}
	s, err := t.Inspect(ctx, data)
	return s, withPath(err, path)
}

// Inspect reports point, face, area and bounds statistics of an in-memory document.
func (t *Toolkit) Inspect(ctx context.Context, data []byte) (s domain.Stats, err error) {
	start := time.Now()
	defer func() { t.observe(observability.OpInspect, start, err) }()

	if err := ctx.Err(); err != nil {
		return domain.Stats{}, err
	}
	g, err := t.extract(data)
	if err != nil {
		return domain.Stats{}, err
	}
	return geometry.Summarize(g)
}

// Digest returns the cache key of a document: the hex SHA-256 of its bytes.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	return data, nil
}

// withPath fills in the file name of an in-memory parse error.
func withPath(err error, path string) error {
	var pe *domain.ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = path
	}
	return err
}
