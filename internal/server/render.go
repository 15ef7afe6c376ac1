package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strconv"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/app"
	"github.com/phanxgames/sprout/internal/page"
)

const (
	defaultRenderFrames = 90
	maxRenderFrames     = 600
	maxRenderSize       = 2560
)

var errBadParam = errors.New("bad parameter")

// render grows a session headlessly and responds with a PNG of the result.
//
//	GET /api/render?element=card-kwiatownik&route=/projects&frames=120&width=1280&height=800&seed=7
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("element")
	if id == "" {
		writeError(w, http.StatusBadRequest, "element is required", s.log)
		return
	}

	cfg := s.cfg
	frames, err := intParam(q.Get("frames"), defaultRenderFrames, 0, maxRenderFrames)
	if err == nil {
		cfg.Window.Width, err = intParam(q.Get("width"), cfg.Window.Width, 1, maxRenderSize)
	}
	if err == nil {
		cfg.Window.Height, err = intParam(q.Get("height"), cfg.Window.Height, 1, maxRenderSize)
	}
	if err == nil && q.Get("seed") != "" {
		cfg.Seed, err = strconv.ParseUint(q.Get("seed"), 10, 64)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), s.log)
		return
	}

	a, err := app.New(cfg, s.store, app.Options{Logger: s.log, Observer: s.observer, Headless: true})
	if err != nil {
		s.log.Error("render setup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "render setup failed", s.log)
		return
	}
	route := q.Get("route")
	if route == "" {
		route = page.RouteHome
	}
	if err := a.Page().Navigate(route); err != nil {
		writeError(w, http.StatusNotFound, err.Error(), s.log)
		return
	}
	el := a.Element(id)
	if el == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no element %q on %s", id, route), s.log)
		return
	}

	a.Trigger(sprout.TriggerEvent{Type: sprout.TriggerEnter, Element: el})
	for range frames {
		a.Tick()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, a.Composite()); err != nil {
		s.log.Error("render encode failed", "error", err)
		writeError(w, http.StatusInternalServerError, "encode failed", s.log)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func intParam(raw string, def, lo, hi int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%w: %q not in [%d, %d]", errBadParam, raw, lo, hi)
	}
	return v, nil
}
