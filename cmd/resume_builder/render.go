package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume to HTML, PDF or DOCX",
	Long: `Renders a resume with one of the templates and writes the export to a file.
Without --in the resume is read from the configured store.

--format takes a comma-separated list (or "all"). With more than one format,
--out names a directory and each export gets its default file name.`,
	RunE:  runRender,
}

var (
	renderInputFile  string
	renderTemplate   string
	renderFormat     string
	renderOutputFile string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "in", "i", "", "Path to a ResumeData JSON file (default: the store)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template: modern, classic or creative (default from config)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Export formats: html, pdf, docx (comma-separated) or all")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Output file, or directory for several formats (default: <name>-resume.<format>)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	formats, err := rendering.ParseFormats(renderFormat)
	if err != nil {
		return err
	}
	templateName := renderTemplate
	if templateName == "" {
		templateName = cfg.Template
	}
	variant, err := rendering.ParseVariant(templateName)
	if err != nil {
		return err
	}

	data, err := loadResume(ctx, cfg, renderInputFile)
	if err != nil {
		return err
	}

	exports, err := rendering.ExportAll(ctx, cfg.PDFPrinter(), variant, data, formats)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	names := make([]string, len(formats))
	paths := make([]string, len(formats))
	for i, format := range formats {
		names[i] = string(format)
		paths[i] = outputPath(format, data, len(formats) > 1)

		outputDir := filepath.Dir(paths[i])
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(paths[i], exports[format], 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Successfully rendered %s resume (%s template)\n", strings.Join(names, ", "), variant)
	for _, path := range paths {
		_, _ = fmt.Fprintf(out, "Output: %s\n", path)
	}
	return nil
}

// outputPath applies --out. For several formats it is a directory.
func outputPath(format rendering.Format, data types.ResumeData, many bool) string {
	switch {
	case renderOutputFile == "":
		return format.Filename(data)
	case many:
		return filepath.Join(renderOutputFile, format.Filename(data))
	default:
		return renderOutputFile
	}
}
