package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// newLLMClient is replaced in tests
var newLLMClient = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	return llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
}

// openStore opens the configured backend and an adapter on the CLI's
// record key. The caller closes the backend.
func openStore(ctx context.Context, cfg *config.Config) (storage.Backend, *storage.Adapter, error) {
	backend, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageKind, err)
	}
	return backend, storage.NewAdapter(backend, cfg.StorageKey), nil
}

// loadResume reads the resume from path, or from the store when path is
// empty. A file goes through the same validation and backfill as a stored
// record.
func loadResume(ctx context.Context, cfg *config.Config, path string) (types.ResumeData, error) {
	if path != "" {
		return readResumeFile(path)
	}

	backend, store, err := openStore(ctx, cfg)
	if err != nil {
		return types.ResumeData{}, err
	}
	defer backend.Close()
	return store.Load(ctx), nil
}

func readResumeFile(path string) (types.ResumeData, error) {
	if err := schemas.ValidateFile(schemas.ResumeData, path); err != nil {
		return types.ResumeData{}, fmt.Errorf("invalid resume file: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to read resume file: %w", err)
	}
	partial, err := storage.Decode(raw)
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to decode resume file: %w", err)
	}
	return storage.Merge(partial, types.DefaultResumeData()), nil
}

// newAssistant resolves the config and returns a service over the model client
func newAssistant(ctx context.Context) (*config.Config, *assistant.Service, func(), error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return cfg, assistant.NewService(client), func() { _ = client.Close() }, nil
}
