// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
)

// maxBodyBytes bounds request bodies; a PDF data URI is the largest payload
const maxBodyBytes = 16 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	backend     storage.Backend
	store       *storage.Adapter
	llmClient   llm.Client
	assistant   *assistant.Service
	printer     rendering.PDFPrinter
	template    rendering.Variant
	ids         editor.IDGenerator
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	sessions    *sessionRegistry
}

// Config holds server configuration and its collaborators
type Config struct {
	Port    int
	Backend storage.Backend
	// LLM may be nil, in which case the /ai endpoints answer 502
	LLM      llm.Client
	Printer  rendering.PDFPrinter
	JWT      *config.JWTConfig
	Template rendering.Variant
	// IDs defaults to editor.UUIDGenerator
	IDs    editor.IDGenerator
	Logger *slog.Logger
	// RateLimit defaults to ratelimit.LoadConfig()
	RateLimit *ratelimit.Config
	// SessionIdleTTL defaults to DefaultSessionIdleTTL
	SessionIdleTTL time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("storage backend is required")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("JWT config is required")
	}
	if cfg.Template == "" {
		cfg.Template = rendering.DefaultVariant
	}
	if cfg.IDs == nil {
		cfg.IDs = editor.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		backend:   cfg.Backend,
		store:     storage.NewAdapter(cfg.Backend, storage.DefaultKey, storage.WithLogger(cfg.Logger)),
		llmClient: cfg.LLM,
		assistant: assistant.NewService(cfg.LLM,
			assistant.WithLogger(cfg.Logger),
			assistant.WithIDGenerator(cfg.IDs),
			assistant.WithObserver(observeAICall),
		),
		printer:     cfg.Printer,
		template:    cfg.Template,
		ids:         cfg.IDs,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:  NewJWTService(cfg.JWT),
		sessions:    newSessionRegistry(cfg.SessionIdleTTL),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metricsHandler())
	mux.HandleFunc("POST /sessions", s.handleCreateSession)

	protect := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protect(h))
	}

	// Resume document
	route("GET /resume", s.handleGetResume)
	route("PUT /resume", s.handlePutResume)
	route("POST /resume/reset", s.handleResetResume)
	route("PATCH /resume/personal", s.handlePatchPersonal)
	route("POST /resume/experience", s.handleAddExperience)
	route("PATCH /resume/experience/{index}", s.handlePatchExperience)
	route("DELETE /resume/experience/{id}", s.handleDeleteExperience)
	route("POST /resume/education", s.handleAddEducation)
	route("PATCH /resume/education/{index}", s.handlePatchEducation)
	route("DELETE /resume/education/{id}", s.handleDeleteEducation)
	route("PUT /resume/skills", s.handlePutSkills)
	route("PATCH /resume/customization", s.handlePatchCustomization)
	route("PATCH /resume/layout", s.handlePatchLayout)

	// Rendering and analysis
	route("GET /resume/preview", s.handlePreview)
	route("GET /resume/export/{format}", s.handleExport)
	route("GET /resume/score", s.handleScore)
	route("GET /resume/ats", s.handleATS)

	// AI wrappers
	route("POST /ai/generate", s.handleGenerate)
	route("POST /ai/keywords", s.handleKeywords)
	route("POST /ai/match", s.handleMatch)
	route("POST /ai/parse-pdf", s.handleParsePDF)
	route("POST /ai/learn", s.handleLearn)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withMetrics(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF printing and model calls are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] Starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("[SERVER] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("[SERVER] Stopped")
	return nil
}

// Close releases the rate limiter, the storage backend and the model client
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.backend.Close(); err != nil {
		log.Printf("[SERVER] Failed to close storage backend: %v", err)
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("[SERVER] Failed to close LLM client: %v", err)
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-RateLimit-Remaining")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", r.Method, r.URL.Path, r.RemoteAddr, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[SERVER] Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code. Internal failures are logged and
// reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		log.Printf("[SERVER] %s %s failed: %v", r.Method, r.URL.Path, err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

var errEmptyBody = &ErrValidation{Message: "request body is empty"}

// decodeJSON reads a JSON request body into v
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Message: "request body too large"}
		}
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return &ErrValidation{Message: "Invalid request body"}
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose fields all have
// defaults; an empty body leaves v untouched.
func (s *Server) decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := s.decodeJSON(w, r, v); err != errEmptyBody {
		return err
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
