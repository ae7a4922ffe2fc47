package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/tinkit"
	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/aretw0/tinkit/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = `<TIN>
  <Surface>
    <P id="1">0 0 0</P>
    <P id="2">1 0 0</P>
    <P id="3">1 1 0</P>
    <P id="4">0 1 0</P>
    <F>1 2 3</F>
    <F>1 3 4</F>
  </Surface>
</TIN>`

func newTestHandler(t *testing.T) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	tk := tinkit.New(tinkit.WithMetrics(observability.NewMetrics(reg)))
	return NewHandler(tk, WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))), reg
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&e))
	return e
}

func TestScale(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodPost, "/scale?factor=2", square)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get(HeaderSurfaces))
	assert.Equal(t, "0", w.Header().Get(HeaderBreaklines))
	assert.Equal(t, "4", w.Header().Get(HeaderPoints))
	assert.Equal(t, "2", w.Header().Get(HeaderFaces))
	assert.Equal(t, "2", w.Header().Get(HeaderFactor))
	assert.Contains(t, w.Body.String(), `<P id="3">2.000000000000 2.000000000000 0.0000</P>`)
}

func TestScale_BadRequests(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name   string
		target string
		body   string
		kind   string
	}{
		{"missing factor", "/scale", square, "invalid_factor"},
		{"non numeric factor", "/scale?factor=big", square, "invalid_factor"},
		{"nan factor", "/scale?factor=NaN", square, "invalid_factor"},
		{"not xml", "/scale?factor=1", "not xml at all <", "parse"},
		{"malformed point", "/scale?factor=1", `<TIN><P>1 2</P></TIN>`, "malformed_element"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, w.Header().Get(HeaderPoints))
			assert.Equal(t, tt.kind, decodeError(t, w).Kind)
		})
	}
}

func TestCentroid(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodPost, "/centroid", square)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var c domain.Centroid
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.True(t, c.Defined)
	assert.InDelta(t, 0.5, c.Point.X, 1e-12)
	assert.InDelta(t, 0.5, c.Point.Y, 1e-12)
	assert.InDelta(t, 1.0, c.TotalArea, 1e-12)
}

func TestCentroid_Undefined(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodPost, "/centroid", `<TIN><P id="1">0 0 0</P></TIN>`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"point"`)

	var c domain.Centroid
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	assert.False(t, c.Defined)
}

func TestCentroid_Errors(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodPost, "/centroid", `<TIN><P id="1">0 0 0</P><F>1 2 3</F></TIN>`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "dangling_reference", decodeError(t, w).Kind)

	w = do(h, http.MethodPost, "/centroid", `<TIN><P>0 0 0</P></TIN>`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_point", decodeError(t, w).Kind)
}

func TestBodyLimit(t *testing.T) {
	tk := tinkit.New()
	h := NewHandler(tk, WithMaxBodyBytes(16))

	w := do(h, http.MethodPost, "/inspect", square)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestInspect(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodPost, "/inspect", strings.Replace(square, "<F>1 3 4</F>", "<F>1 3 4</F><F>1 2</F>", 1))
	require.Equal(t, http.StatusOK, w.Code)

	var s domain.Stats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&s))
	assert.Equal(t, 4, s.Points)
	assert.Equal(t, 2, s.Faces)
	assert.Equal(t, 1, s.FilteredFaces)
	require.NotNil(t, s.Bounds)
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, "tinkit-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(tinkit.Version), info["version"])
}

func TestOpenAPIDocument(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)
	for _, p := range []string{"/scale", "/centroid", "/inspect", "/health", "/info"} {
		assert.NotNil(t, doc.Paths.Find(p), p)
	}

	h, _ := newTestHandler(t)
	w := do(h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	do(h, http.MethodPost, "/centroid", square)
	do(h, http.MethodPost, "/scale?factor=1", square)

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `tinkit_operations_total{operation="centroid",result="ok"} 1`)
	assert.Contains(t, body, `tinkit_operations_total{operation="scale",result="ok"} 1`)
	assert.Contains(t, body, "tinkit_points_scaled_total 4")
}

func TestCORS(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(h, http.MethodOptions, "/scale", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), HeaderPoints)
}
