package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var initStoreForce bool

var initStoreCmd = &cobra.Command{
	Use:   "init-store",
	Short: "Write the sample resume to the configured store",
	Long:  "Creates the storage schema if needed and writes the sample resume under the CLI record key. An existing record is kept unless --force is given.",
	RunE:  runInitStore,
}

func init() {
	initStoreCmd.Flags().BoolVar(&initStoreForce, "force", false, "Overwrite an existing record")
	rootCmd.AddCommand(initStoreCmd)
}

func runInitStore(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	backend, store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	out := cmd.OutOrStdout()
	_, err = backend.Get(ctx, store.Key())
	switch {
	case err == nil && !initStoreForce:
		_, _ = fmt.Fprintf(out, "Record %q already exists, use --force to overwrite\n", store.Key())
		return nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("failed to read record %q: %w", store.Key(), err)
	}

	store.Save(ctx, types.DefaultResumeData())
	_, _ = fmt.Fprintf(out, "Initialized %s storage record %q\n", cfg.StorageKind, store.Key())
	return nil
}
