package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Draft resume content with the hosted model",
	Long:  "Runs one assistant operation and prints its JSON result. Commands that read the resume use the configured store.",
}

var (
	aiJobRole      string
	aiIndustry     string
	aiCareerInfo   string
	aiJobFile      string
	aiPDFFile      string
	aiOriginal     string
	aiEdited       string
	aiApply        bool
	aiResumeInFile string
	aiVerbose      bool
)

// summary returns a printer for the human-readable summary shown with
// --verbose, or nil
func summary(cmd *cobra.Command) *observability.Printer {
	if !aiVerbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

var aiKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Suggest keywords for a job role and industry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		_, svc, closeClient, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer closeClient()

		out, err := svc.SuggestKeywords(ctx, types.SuggestKeywordsInput{JobRole: aiJobRole, Industry: aiIndustry})
		if err != nil {
			return err
		}
		if p := summary(cmd); p != nil {
			p.PrintKeywords(out)
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var aiMatchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the resume against a job description",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		job, err := os.ReadFile(aiJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}

		cfg, svc, closeClient, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer closeClient()

		data, err := loadResume(ctx, cfg, aiResumeInFile)
		if err != nil {
			return err
		}
		out, err := svc.MatchJobDescription(ctx, types.MatchJobDescriptionInput{
			ResumeText:         assistant.ResumeText(data),
			JobDescriptionText: string(job),
		})
		if err != nil {
			return err
		}
		if p := summary(cmd); p != nil {
			p.PrintMatch(out)
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var aiGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a professional summary",
	Long:  "Generates a summary for a job role. Career information defaults to the stored resume; --apply saves the summary to the store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		cfg, svc, closeClient, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer closeClient()

		backend, store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.Close()

		career := aiCareerInfo
		if career == "" {
			career = assistant.CareerInformation(store.Load(ctx))
		}
		out, err := svc.GenerateResumeContent(ctx, types.GenerateResumeContentInput{
			CareerInformation: career,
			JobRole:           aiJobRole,
		})
		if err != nil {
			return err
		}
		if aiApply {
			store.Save(ctx, editor.ApplyGeneratedSummary(store.Load(ctx), out.ResumeContent))
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var aiParsePDFCmd = &cobra.Command{
	Use:   "parse-pdf",
	Short: "Extract resume data from a PDF",
	Long:  "Parses a PDF resume. --apply replaces the stored sections the model returned and keeps the rest.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		pdf, err := os.ReadFile(aiPDFFile)
		if err != nil {
			return fmt.Errorf("failed to read PDF: %w", err)
		}

		cfg, svc, closeClient, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer closeClient()

		parsed, err := svc.ParseResumePdf(ctx, types.ParseResumePdfInput{
			PDFDataURI: assistant.EncodeDataURI(pdf, "application/pdf"),
		})
		if err != nil {
			return err
		}

		if aiApply {
			backend, store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()
			store.Save(ctx, editor.ApplyImport(store.Load(ctx), *parsed))
		}
		if p := summary(cmd); p != nil {
			p.PrintParsedResume(parsed)
		}
		return printJSON(cmd.OutOrStdout(), parsed)
	},
}

var aiLearnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Record an edit of AI-generated content",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		_, svc, closeClient, err := newAssistant(ctx)
		if err != nil {
			return err
		}
		defer closeClient()

		out, err := svc.LearnFromUserEdits(ctx, types.LearnFromUserEditsInput{
			OriginalContent: aiOriginal,
			EditedContent:   aiEdited,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	aiCmd.PersistentFlags().BoolVarP(&aiVerbose, "verbose", "v", false, "Also print a readable summary to stderr")

	aiKeywordsCmd.Flags().StringVar(&aiJobRole, "role", "", "Target job role (required)")
	aiKeywordsCmd.Flags().StringVar(&aiIndustry, "industry", "", "Industry (required)")
	_ = aiKeywordsCmd.MarkFlagRequired("role")
	_ = aiKeywordsCmd.MarkFlagRequired("industry")

	aiMatchCmd.Flags().StringVar(&aiJobFile, "job", "", "Path to a job description text file (required)")
	aiMatchCmd.Flags().StringVarP(&aiResumeInFile, "in", "i", "", "Path to a ResumeData JSON file (default: the store)")
	_ = aiMatchCmd.MarkFlagRequired("job")

	aiGenerateCmd.Flags().StringVar(&aiJobRole, "role", "", "Target job role (required)")
	aiGenerateCmd.Flags().StringVar(&aiCareerInfo, "career", "", "Career information (default: summarized from the store)")
	aiGenerateCmd.Flags().BoolVar(&aiApply, "apply", false, "Save the generated summary to the store")
	_ = aiGenerateCmd.MarkFlagRequired("role")

	aiParsePDFCmd.Flags().StringVar(&aiPDFFile, "file", "", "Path to a PDF resume (required)")
	aiParsePDFCmd.Flags().BoolVar(&aiApply, "apply", false, "Merge the parsed sections into the store")
	_ = aiParsePDFCmd.MarkFlagRequired("file")

	aiLearnCmd.Flags().StringVar(&aiOriginal, "original", "", "AI-generated content (required)")
	aiLearnCmd.Flags().StringVar(&aiEdited, "edited", "", "The user's edited content (required)")
	_ = aiLearnCmd.MarkFlagRequired("original")
	_ = aiLearnCmd.MarkFlagRequired("edited")

	aiCmd.AddCommand(aiKeywordsCmd, aiMatchCmd, aiGenerateCmd, aiParsePDFCmd, aiLearnCmd)
	rootCmd.AddCommand(aiCmd)
}
