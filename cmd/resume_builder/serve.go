package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for editing, rendering and exporting resumes.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	variant, err := rendering.ParseVariant(cfg.Template)
	if err != nil {
		return err
	}

	// The model is optional; without a key the AI endpoints answer 502
	var client llm.Client
	if cfg.APIKey != "" {
		client, err = newLLMClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
	} else {
		log.Printf("[SERVER] GEMINI_API_KEY not set, AI endpoints are disabled")
	}

	backend, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return fmt.Errorf("failed to open %s storage: %w", cfg.StorageKind, err)
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Backend:   backend,
		LLM:       client,
		Printer:   cfg.PDFPrinter(),
		JWT:       jwtConfig,
		Template:  variant,
		RateLimit: ratelimit.LoadConfig(),
	})
	if err != nil {
		_ = backend.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
