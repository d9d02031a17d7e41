package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/resume-builder/internal/analytics"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the resume completeness score",
	RunE:  runScore,
}

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Check a rendered resume for ATS compatibility",
	Long:  "Renders the resume with a template and reports fonts, headings and layout that applicant tracking systems parse poorly.",
	RunE:  runATS,
}

var (
	scoreInputFile string
	scoreJSON      bool
	atsInputFile   string
	atsTemplate    string
	atsJSON        bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInputFile, "in", "i", "", "Path to a ResumeData JSON file (default: the store)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")

	atsCmd.Flags().StringVarP(&atsInputFile, "in", "i", "", "Path to a ResumeData JSON file (default: the store)")
	atsCmd.Flags().StringVarP(&atsTemplate, "template", "t", "", "Template: modern, classic or creative (default from config)")
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print the report as JSON")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(atsCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	data, err := loadResume(ctx, cfg, scoreInputFile)
	if err != nil {
		return err
	}

	score, breakdown := analytics.Score(data), analytics.Breakdown(data)
	out := cmd.OutOrStdout()
	if scoreJSON {
		return printJSON(out, map[string]any{"score": score, "breakdown": breakdown})
	}

	observability.NewPrinter(out).PrintScore(score, breakdown)
	return nil
}

func runATS(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	templateName := atsTemplate
	if templateName == "" {
		templateName = cfg.Template
	}
	variant, err := rendering.ParseVariant(templateName)
	if err != nil {
		return err
	}

	data, err := loadResume(ctx, cfg, atsInputFile)
	if err != nil {
		return err
	}
	html, err := rendering.RenderHTML(variant, data)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	report, err := analytics.CheckATS(html)
	if err != nil {
		return fmt.Errorf("failed to check ATS compatibility: %w", err)
	}

	out := cmd.OutOrStdout()
	if atsJSON {
		return printJSON(out, report)
	}

	observability.NewPrinter(out).PrintATSReport(report)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
