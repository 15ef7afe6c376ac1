package server

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phanxgames/sprout/internal/content"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Projects, s.log)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Project(chi.URLParam(r, "id"))
	if err != nil {
		s.lookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p, s.log)
}

func (s *Server) listLabs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Labs, s.log)
}

func (s *Server) getLab(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.Lab(chi.URLParam(r, "id"))
	if err != nil {
		s.lookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l, s.log)
}

func (s *Server) listCVs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.CVs, s.log)
}

func (s *Server) lookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, content.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error(), s.log)
		return
	}
	s.log.Error("content lookup failed", "error", err)
	writeError(w, http.StatusInternalServerError, "lookup failed", s.log)
}

type variantInfo struct {
	Name      string  `json:"name"`
	Family    string  `json:"family"`
	Mode      string  `json:"mode"`
	Exclusive bool    `json:"exclusive"`
	Grid      float64 `json:"grid"`
	MaxDepth  int     `json:"maxDepth"`
	Density   float64 `json:"density"`
}

func (s *Server) listVariants(w http.ResponseWriter, r *http.Request) {
	out := make([]variantInfo, 0, len(s.variants))
	for _, v := range s.variants {
		out = append(out, variantInfo{
			Name:      v.Name,
			Family:    v.Family.String(),
			Mode:      v.Mode.String(),
			Exclusive: v.Exclusive,
			Grid:      v.Grid,
			MaxDepth:  v.MaxDepth,
			Density:   v.Density,
		})
	}
	slices.SortFunc(out, func(a, b variantInfo) int { return strings.Compare(a.Name, b.Name) })
	writeJSON(w, http.StatusOK, out, s.log)
}
