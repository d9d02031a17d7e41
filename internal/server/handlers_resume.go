package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// ---------------------------------------------------------------------
// Resume Handlers
// ---------------------------------------------------------------------

// FieldUpdateRequest sets one text field
type FieldUpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// LayoutUpdateRequest sets one layout flag
type LayoutUpdateRequest struct {
	Field string `json:"field"`
	Value bool   `json:"value"`
}

// SkillsUpdateRequest replaces the skills, either from comma-separated text
// or from an explicit list
type SkillsUpdateRequest struct {
	Text   *string  `json:"text,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// EntryCreatedResponse is returned when an experience or education entry is added
type EntryCreatedResponse struct {
	ID     string           `json:"id"`
	Resume types.ResumeData `json:"resume"`
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	_, store, err := s.sessionFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, store.Load(r.Context()))
}

// handlePutResume replaces the whole document. Missing top-level fields take
// their seed value, as they would when loaded from storage.
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	_, store, err := s.sessionFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || !json.Valid(raw) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := schemas.ValidateOutput(schemas.ResumeData, string(raw)); err != nil {
		s.writeError(w, r, err)
		return
	}
	partial, err := storage.Decode(raw)
	if err != nil {
		s.writeError(w, r, &ErrValidation{Message: err.Error()})
		return
	}

	data := storage.Merge(partial, types.DefaultResumeData())
	store.Save(r.Context(), data)
	s.jsonResponse(w, http.StatusOK, data)
}

func (s *Server) handleResetResume(w http.ResponseWriter, r *http.Request) {
	_, store, err := s.sessionFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := types.DefaultResumeData()
	store.Save(r.Context(), data)
	s.jsonResponse(w, http.StatusOK, data)
}

// mutate loads the session's resume, applies fn and saves the result
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(types.ResumeData) (types.ResumeData, error)) {
	_, store, err := s.sessionFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := fn(store.Load(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	store.Save(r.Context(), updated)
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handlePatchPersonal(w http.ResponseWriter, r *http.Request) {
	var req FieldUpdateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(data types.ResumeData) (types.ResumeData, error) {
		return editor.SetPersonalField(data, req.Field, req.Value)
	})
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	s.addEntry(w, r, func(data types.ResumeData) (types.ResumeData, string) {
		return editor.AddExperience(data, s.ids)
	})
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	s.addEntry(w, r, func(data types.ResumeData) (types.ResumeData, string) {
		return editor.AddEducation(data, s.ids)
	})
}

func (s *Server) addEntry(w http.ResponseWriter, r *http.Request, add func(types.ResumeData) (types.ResumeData, string)) {
	_, store, err := s.sessionFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, id := add(store.Load(r.Context()))
	store.Save(r.Context(), updated)
	s.jsonResponse(w, http.StatusCreated, EntryCreatedResponse{ID: id, Resume: updated})
}

func (s *Server) handlePatchExperience(w http.ResponseWriter, r *http.Request) {
	s.patchEntry(w, r, editor.SetExperienceField)
}

func (s *Server) handlePatchEducation(w http.ResponseWriter, r *http.Request) {
	s.patchEntry(w, r, editor.SetEducationField)
}

func (s *Server) patchEntry(w http.ResponseWriter, r *http.Request, set func(types.ResumeData, int, string, string) (types.ResumeData, error)) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Field: "index", Message: "must be an integer"})
		return
	}
	var req FieldUpdateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(data types.ResumeData) (types.ResumeData, error) {
		return set(data, index, req.Field, req.Value)
	})
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mutate(w, r, func(data types.ResumeData) (types.ResumeData, error) {
		return editor.RemoveExperience(data, id)
	})
}

func (s *Server) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mutate(w, r, func(data types.ResumeData) (types.ResumeData, error) {
		return editor.RemoveEducation(data, id)
	})
}

func (s *Server) handlePutSkills(w http.ResponseWriter, r *http.Request) {
	var req SkillsUpdateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Text == nil && req.Skills == nil {
		s.writeError(w, r, &ErrValidation{Field: "skills", Message: "text or skills is required"})
		return
	}
	s.mutate(w, r, func(data types.ResumeData) (types.ResumeData, error) {
		if req.Text != nil {
			return editor.SetSkillsFromText(data, *req.Text), nil
		}
		return editor.SetSkills(data, req.Skills), nil
	})
}

func (s *Server) handlePatchCustomization(w http.ResponseWriter, r *http.Request) {
	var req FieldUpdateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.mutate(w, r, func(data types.ResumeData) (types.ResumeData, error) {
		return editor.SetCustomizationField(data, req.Field, req.Value)
	})
}

func (s *Server) handlePatchLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutUpdateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Field == "" {
		s.writeError(w, r, &ErrValidation{Field: "field", Message: "is required"})
		return
	}
	s.mutate(w, r, func(data types.ResumeData) (types.ResumeData, error) {
		return editor.SetLayout(data, req.Field, req.Value)
	})
}

// loadResume loads the caller's resume
func (s *Server) loadResume(r *http.Request) (types.ResumeData, *session, *storage.Adapter, error) {
	sess, store, err := s.sessionFor(r)
	if err != nil {
		return types.ResumeData{}, nil, nil, err
	}
	return store.Load(r.Context()), sess, store, nil
}
