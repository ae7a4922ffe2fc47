package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/tinkit"
	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

// DefaultMaxBodyBytes bounds the size of an uploaded document.
const DefaultMaxBodyBytes = 64 << 20

// Summary headers set on a successful /scale response.
const (
	HeaderSurfaces   = "X-Tin-Surfaces"
	HeaderBreaklines = "X-Tin-Breaklines"
	HeaderPoints     = "X-Tin-Points"
	HeaderFaces      = "X-Tin-Faces"
	HeaderFactor     = "X-Tin-Factor"
)

// Toolkit is the subset of *tinkit.Toolkit served over HTTP.
type Toolkit interface {
	Scale(ctx context.Context, r io.Reader, factor float64, w io.Writer) (domain.ScaleSummary, error)
	Centroid(ctx context.Context, data []byte) (domain.Centroid, error)
	Inspect(ctx context.Context, data []byte) (domain.Stats, error)
}

// Server holds the handlers of the HTTP adapter.
type Server struct {
	Toolkit      Toolkit
	Logger       *slog.Logger
	MaxBodyBytes int64
	metrics      http.Handler
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetricsHandler mounts h (usually promhttp) on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// NewHandler creates a new HTTP handler for the toolkit.
func NewHandler(tk Toolkit, opts ...Option) http.Handler {
	s := &Server{
		Toolkit:      tk,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/scale", s.Scale)
	r.Post("/centroid", s.Centroid)
	r.Post("/inspect", s.Inspect)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", strings.Join([]string{
			HeaderSurfaces, HeaderBreaklines, HeaderPoints, HeaderFaces, HeaderFactor,
		}, ", "))
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>tinkit API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusFor maps the error taxonomy to a status code: the caller's document
// is at fault for input errors, the server for anything else.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsInputError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, op string, status int, kind string, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "operation", op, "kind", kind, "error", err)
	} else {
		s.Logger.Warn("request rejected", "operation", op, "kind", kind, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), Kind: kind})
}

func (s *Server) failErr(w http.ResponseWriter, op string, err error) {
	s.fail(w, op, statusFor(err), domain.Kind(err), err)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

// Scale handles the POST /scale?factor=F request.
func (s *Server) Scale(w http.ResponseWriter, r *http.Request) {
	var factor float64
	if err := runtime.BindQueryParameter("form", true, true, "factor", r.URL.Query(), &factor); err != nil {
		s.fail(w, "scale", http.StatusBadRequest, "invalid_factor", err)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.failErr(w, "scale", err)
		return
	}

	var out bytes.Buffer
	summary, err := s.Toolkit.Scale(r.Context(), bytes.NewReader(body), factor, &out)
	if err != nil {
		if errors.Is(err, tinkit.ErrInvalidFactor) {
			s.fail(w, "scale", http.StatusBadRequest, "invalid_factor", err)
			return
		}
		s.failErr(w, "scale", err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/xml")
	h.Set(HeaderSurfaces, strconv.Itoa(summary.Surfaces))
	h.Set(HeaderBreaklines, strconv.Itoa(summary.Breaklines))
	h.Set(HeaderPoints, strconv.Itoa(summary.Points))
	h.Set(HeaderFaces, strconv.Itoa(summary.Faces))
	h.Set(HeaderFactor, strconv.FormatFloat(summary.Factor, 'f', -1, 64))
	if _, err := out.WriteTo(w); err != nil {
		s.Logger.Error("scale response write failed", "error", err)
	}
}

// Centroid handles the POST /centroid request.
func (s *Server) Centroid(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.failErr(w, "centroid", err)
		return
	}

	c, err := s.Toolkit.Centroid(r.Context(), body)
	if err != nil {
		s.failErr(w, "centroid", err)
		return
	}
	writeJSON(w, s.Logger, c)
}

// Inspect handles the POST /inspect request.
func (s *Server) Inspect(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.failErr(w, "inspect", err)
		return
	}

	stats, err := s.Toolkit.Inspect(r.Context(), body)
	if err != nil {
		s.failErr(w, "inspect", err)
		return
	}
	writeJSON(w, s.Logger, stats)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, s.Logger, map[string]string{
		"app":         "tinkit-http",
		"version":     strings.TrimSpace(tinkit.Version),
		"api_version": apiVersion,
	})
}
