package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/analytics"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// ScoreResponse is the completeness score with the check behind each point
type ScoreResponse struct {
	Score     int               `json:"score"`
	Breakdown []analytics.Check `json:"breakdown"`
}

// variantFor reads ?template=, falling back to the configured default
func (s *Server) variantFor(r *http.Request) (rendering.Variant, error) {
	name := r.URL.Query().Get("template")
	if name == "" {
		return s.template, nil
	}
	return rendering.ParseVariant(name)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	variant, err := s.variantFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, _, _, err := s.loadResume(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	html, err := rendering.RenderHTML(variant, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Printf("[SERVER] Error writing preview: %v", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := rendering.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	variant, err := s.variantFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, _, _, err := s.loadResume(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out, err := rendering.Export(r.Context(), s.printer, format, variant, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Printf("[SERVER] Error writing %s export: %v", format, err)
	}
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	data, _, _, err := s.loadResume(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ScoreResponse{
		Score:     analytics.Score(data),
		Breakdown: analytics.Breakdown(data),
	})
}

func (s *Server) handleATS(w http.ResponseWriter, r *http.Request) {
	variant, err := s.variantFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, _, _, err := s.loadResume(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	html, err := rendering.RenderHTML(variant, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := analytics.CheckATS(html)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
