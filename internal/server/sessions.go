package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/storage"
)

// session is the in-process state of one editing session. The resume itself
// lives in storage; this only tracks what must not outlive the process.
type session struct {
	pending *editor.Pending[assistant.Kind]
	// lastSeen is guarded by the registry's mutex
	lastSeen time.Time

	mu sync.Mutex
	// generated is the last AI-generated summary, the baseline for learn
	generated string
}

func (s *session) setGenerated(content string) {
	s.mu.Lock()
	s.generated = content
	s.mu.Unlock()
}

func (s *session) lastGenerated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated
}

// DefaultSessionIdleTTL is how long an unused session's state is kept
const DefaultSessionIdleTTL = 2 * time.Hour

// sessionSweepInterval bounds how often get scans for idle sessions
const sessionSweepInterval = time.Minute

type sessionRegistry struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*session
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func newSessionRegistry(idleTTL time.Duration) *sessionRegistry {
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	return &sessionRegistry{
		sessions: make(map[uuid.UUID]*session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// get returns the state for id, creating it on first use. Tokens outlive a
// restart, so a valid token may name a session this process has not seen.
func (r *sessionRegistry) get(id uuid.UUID) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= sessionSweepInterval {
		r.evictIdle(now)
		r.lastSweep = now
	}

	sess, ok := r.sessions[id]
	if !ok {
		sess = &session{pending: editor.NewPending[assistant.Kind]()}
		r.sessions[id] = sess
		sessionsActive.Set(float64(len(r.sessions)))
	}
	sess.lastSeen = now
	return sess
}

// evictIdle drops sessions unused for idleTTL with nothing in flight. The
// stored resume is untouched; only the learn baseline is lost.
// Callers hold r.mu.
func (r *sessionRegistry) evictIdle(now time.Time) {
	for id, sess := range r.sessions {
		if now.Sub(sess.lastSeen) >= r.idleTTL && sess.pending.Idle() {
			delete(r.sessions, id)
		}
	}
	sessionsActive.Set(float64(len(r.sessions)))
}

func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CreateSessionResponse is returned by POST /sessions
type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleCreateSession issues an anonymous session token. The session's
// resume starts as the seed record on first load.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sessionID := uuid.New()
	token, expiresAt, err := s.jwtService.GenerateToken(sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}
	s.sessions.get(sessionID)

	s.jsonResponse(w, http.StatusCreated, CreateSessionResponse{
		SessionID: sessionID.String(),
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
	})
}

// sessionFor returns the caller's session state and a storage adapter bound
// to the session's record.
func (s *Server) sessionFor(r *http.Request) (*session, *storage.Adapter, error) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		return nil, nil, err
	}
	return s.sessions.get(sessionID), s.store.WithKey(storage.SessionKey(sessionID.String())), nil
}
