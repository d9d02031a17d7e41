package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jonathan/resume-builder/internal/types"
)

// Adapter loads and saves a single ResumeData record under one key.
// Load never fails and Save never reports failure; problems are logged.
type Adapter struct {
	backend  Backend
	key      string
	logger   *slog.Logger
	defaults func() types.ResumeData
}

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the logger used for swallowed errors
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithDefaults replaces the seed record used for first use and backfill
func WithDefaults(fn func() types.ResumeData) Option {
	return func(a *Adapter) {
		if fn != nil {
			a.defaults = fn
		}
	}
}

// NewAdapter creates an adapter for key on the given backend
func NewAdapter(backend Backend, key string, opts ...Option) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	a := &Adapter{
		backend:  backend,
		key:      key,
		logger:   slog.Default(),
		defaults: types.DefaultResumeData,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key this adapter reads and writes
func (a *Adapter) Key() string {
	return a.key
}

// WithKey returns an adapter sharing the backend but bound to another key
func (a *Adapter) WithKey(key string) *Adapter {
	clone := *a
	if key == "" {
		key = DefaultKey
	}
	clone.key = key
	return &clone
}

// Load returns the stored record merged over defaults, or the defaults when
// the record is absent or unparsable.
func (a *Adapter) Load(ctx context.Context) types.ResumeData {
	raw, err := a.backend.Get(ctx, a.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Error("failed to read resume data", "key", a.key, "error", err)
		}
		return a.defaults()
	}

	partial, err := Decode(raw)
	if err != nil {
		a.logger.Warn("discarding unparsable resume data", "key", a.key, "error", err)
		return a.defaults()
	}

	return Merge(partial, a.defaults())
}

// Save serializes the full record and writes it. Errors are logged only.
func (a *Adapter) Save(ctx context.Context, data types.ResumeData) {
	raw, err := json.Marshal(withEmptyLists(data))
	if err != nil {
		a.logger.Error("failed to serialize resume data", "key", a.key, "error", err)
		return
	}
	if err := a.backend.Put(ctx, a.key, raw); err != nil {
		a.logger.Error("failed to save resume data", "key", a.key, "bytes", len(raw), "error", err)
	}
}

// Decode parses a stored record into its optional form. A JSON null or any
// non-object document is rejected.
func Decode(raw []byte) (PartialResume, error) {
	var partial *PartialResume
	if err := json.Unmarshal(raw, &partial); err != nil {
		return PartialResume{}, err
	}
	if partial == nil {
		return PartialResume{}, errors.New("stored record is null")
	}
	return *partial, nil
}

// withEmptyLists replaces nil slices with empty ones so they are stored as []
// rather than null, which Load would backfill from the defaults.
func withEmptyLists(data types.ResumeData) types.ResumeData {
	out := data.Clone()
	if out.Experience == nil {
		out.Experience = []types.Experience{}
	}
	for i := range out.Experience {
		if out.Experience[i].Responsibilities == nil {
			out.Experience[i].Responsibilities = []string{}
		}
	}
	if out.Education == nil {
		out.Education = []types.Education{}
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out
}
