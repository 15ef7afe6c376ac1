package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/content"
)

func newTestHandler(t *testing.T, opts Options) http.Handler {
	t.Helper()
	store, err := content.Load("../../content")
	require.NoError(t, err)
	cfg := sprout.DefaultConfig()
	cfg.Seed = 3
	h, err := NewHandler(cfg, store, opts)
	require.NoError(t, err)
	return h
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, newTestHandler(t, Options{}), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestProjectsAPI(t *testing.T) {
	h := newTestHandler(t, Options{})

	w := get(t, h, "/api/projects")
	require.Equal(t, http.StatusOK, w.Code)
	var projects []content.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 4)

	w = get(t, h, "/api/projects/kwiatownik")
	require.Equal(t, http.StatusOK, w.Code)
	var p content.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Kwiatownik", p.Title)

	w = get(t, h, "/api/projects/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestLabsAndCV(t *testing.T) {
	h := newTestHandler(t, Options{})

	w := get(t, h, "/api/labs/pixel-city")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pixel city")
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/labs/missing").Code)

	w = get(t, h, "/api/cv")
	require.Equal(t, http.StatusOK, w.Code)
	var cvs []content.CV
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cvs))
	assert.Len(t, cvs, 2)
}

func TestVariantsAPI(t *testing.T) {
	w := get(t, newTestHandler(t, Options{}), "/api/variants")
	require.Equal(t, http.StatusOK, w.Code)
	var out []variantInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, len(sprout.Presets()))
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].Name, out[i].Name)
	}
	for _, v := range out {
		if v.Name == "skyline" {
			assert.Equal(t, "stalk", v.Mode)
			assert.Equal(t, "skyline", v.Family)
		}
	}
}

func TestPages(t *testing.T) {
	h := newTestHandler(t, Options{})
	tests := []struct {
		path string
		want string
		not  string
	}{
		{"/", "GeoCommunity", "Tracklog"},
		{"/projects", "Tracklog", "Pixel city"},
		{"/lab", "Pixel city", "Tracklog"},
		{"/kontakt", "mailto:", "Tracklog"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, h, tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
			assert.Contains(t, w.Body.String(), tt.want)
			assert.NotContains(t, w.Body.String(), tt.not)
		})
	}
	assert.Equal(t, http.StatusNotFound, get(t, h, "/missing").Code)
}

func TestRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := newTestHandler(t, Options{Registry: reg})

	w := get(t, h, "/api/render?element=card-kwiatownik&frames=30&width=640&height=480")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())

	families, err := reg.Gather()
	require.NoError(t, err)
	var sawGrowth bool
	for _, mf := range families {
		if mf.GetName() == "sprout_growths_total" {
			sawGrowth = true
		}
	}
	assert.True(t, sawGrowth)
}

func TestRenderErrors(t *testing.T) {
	h := newTestHandler(t, Options{})
	tests := []struct {
		query string
		code  int
	}{
		{"", http.StatusBadRequest},
		{"element=card-kwiatownik&frames=-1", http.StatusBadRequest},
		{"element=card-kwiatownik&width=99999", http.StatusBadRequest},
		{"element=card-kwiatownik&seed=x", http.StatusBadRequest},
		{"element=card-kwiatownik&route=/nope", http.StatusNotFound},
		{"element=card-missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.code, get(t, h, "/api/render?"+tt.query).Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t, Options{})
	get(t, h, "/health")
	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `sprout_http_requests_total{code="200",route="/health"} 1`)
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi"), 0o644))
	h := newTestHandler(t, Options{StaticDir: dir})

	w := get(t, h, "/static/hello.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", w.Body.String())
}
