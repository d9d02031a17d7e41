package server

import (
	"context"
	"net/http"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// ---------------------------------------------------------------------
// AI Handlers
// ---------------------------------------------------------------------

// GenerateResponse is the generated summary and the resume it was applied to
type GenerateResponse struct {
	types.GenerateResumeContentOutput
	Resume types.ResumeData `json:"resume"`
}

// ParsePDFResponse is the parsed import and the resume it was applied to
type ParsePDFResponse struct {
	Parsed types.ParsedResume `json:"parsed"`
	Resume types.ResumeData   `json:"resume"`
}

// aiCall is the body of an AI handler. It runs with the session's slot for
// its kind held.
type aiCall func(ctx context.Context, sess *session, store *storage.Adapter) (any, error)

// runAI admits one request per kind per session; a second request of the
// same kind is refused with 409 until the first finishes.
func (s *Server) runAI(w http.ResponseWriter, r *http.Request, kind assistant.Kind, call aiCall) {
	sess, store, err := s.sessionFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !sess.pending.TryStart(kind) {
		s.writeError(w, r, &editor.BusyError{Kind: string(kind)})
		return
	}
	defer sess.pending.Done(kind)

	// A disconnecting client does not abort the call; its result is still
	// merged into whatever the resume is when it arrives.
	ctx := context.WithoutCancel(r.Context())

	out, err := call(ctx, sess, store)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateResumeContentInput
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.runAI(w, r, assistant.KindGenerate, func(ctx context.Context, sess *session, store *storage.Adapter) (any, error) {
		if req.CareerInformation == "" {
			req.CareerInformation = assistant.CareerInformation(store.Load(ctx))
		}
		out, err := s.assistant.GenerateResumeContent(ctx, req)
		if err != nil {
			return nil, err
		}

		updated := editor.ApplyGeneratedSummary(store.Load(ctx), out.ResumeContent)
		store.Save(ctx, updated)
		sess.setGenerated(out.ResumeContent)
		return GenerateResponse{GenerateResumeContentOutput: *out, Resume: updated}, nil
	})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.SuggestKeywordsInput
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.runAI(w, r, assistant.KindKeywords, func(ctx context.Context, _ *session, _ *storage.Adapter) (any, error) {
		return s.assistant.SuggestKeywords(ctx, req)
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchJobDescriptionInput
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.runAI(w, r, assistant.KindMatch, func(ctx context.Context, _ *session, store *storage.Adapter) (any, error) {
		if req.ResumeText == "" {
			req.ResumeText = assistant.ResumeText(store.Load(ctx))
		}
		return s.assistant.MatchJobDescription(ctx, req)
	})
}

func (s *Server) handleParsePDF(w http.ResponseWriter, r *http.Request) {
	var req types.ParseResumePdfInput
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.runAI(w, r, assistant.KindParsePDF, func(ctx context.Context, _ *session, store *storage.Adapter) (any, error) {
		parsed, err := s.assistant.ParseResumePdf(ctx, req)
		if err != nil {
			return nil, err
		}

		updated := editor.ApplyImport(store.Load(ctx), *parsed)
		store.Save(ctx, updated)
		return ParsePDFResponse{Parsed: *parsed, Resume: updated}, nil
	})
}

// handleLearn reports an edit of AI-generated content. Omitted fields
// default to the session's last generated summary and the current summary.
func (s *Server) handleLearn(w http.ResponseWriter, r *http.Request) {
	var req types.LearnFromUserEditsInput
	if err := s.decodeOptionalJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.runAI(w, r, assistant.KindLearn, func(ctx context.Context, sess *session, store *storage.Adapter) (any, error) {
		if req.OriginalContent == "" {
			req.OriginalContent = sess.lastGenerated()
		}
		if req.EditedContent == "" {
			req.EditedContent = store.Load(ctx).PersonalInfo.Summary
		}
		if !editor.HasLearnableEdit(req.OriginalContent, req.EditedContent) {
			return nil, &ErrValidation{Message: "No changes to learn from. Edit the AI-generated summary first."}
		}
		return s.assistant.LearnFromUserEdits(ctx, req)
	})
}
