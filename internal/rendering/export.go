package rendering

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Format is an export file format
type Format string

// Export formats
const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Formats lists the export formats
var Formats = []Format{FormatHTML, FormatPDF, FormatDOCX}

// ParseFormat resolves an export format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &TemplateError{Message: fmt.Sprintf("unknown export format %q", name)}
}

// ParseFormats resolves a comma-separated list of format names, e.g.
// "html,pdf". "all" selects every format. Duplicates are dropped.
func ParseFormats(list string) ([]Format, error) {
	if strings.EqualFold(strings.TrimSpace(list), "all") {
		return append([]Format(nil), Formats...), nil
	}

	var out []Format
	seen := make(map[Format]bool)
	for _, name := range strings.Split(list, ",") {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/html; charset=utf-8"
	}
}

// Filename returns the download name for an export, e.g. "jane-doe-resume.pdf"
func (f Format) Filename(data types.ResumeData) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(DisplayName(data)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		}
	}
	base := strings.Trim(sb.String(), "-")
	if base == "" {
		base = "resume"
	} else {
		base += "-resume"
	}
	return base + "." + string(f)
}

// ExportHTML renders a standalone HTML document with the print stylesheet
// embedded, ready to open in a browser or print.
func ExportHTML(variant Variant, data types.ResumeData) (string, error) {
	return execute("document", variant, data)
}

// ExportPDF renders the HTML document and prints it to PDF with printer
func ExportPDF(ctx context.Context, printer PDFPrinter, variant Variant, data types.ResumeData) ([]byte, error) {
	if printer == nil {
		return nil, &RenderError{Message: "no PDF printer configured"}
	}
	doc, err := ExportHTML(variant, data)
	if err != nil {
		return nil, err
	}
	pdf, err := printer.PrintPDF(ctx, doc)
	if err != nil {
		return nil, &RenderError{Message: "failed to print PDF", Cause: err}
	}
	return pdf, nil
}

// Export produces a single export in format
func Export(ctx context.Context, printer PDFPrinter, format Format, variant Variant, data types.ResumeData) ([]byte, error) {
	switch format {
	case FormatHTML:
		doc, err := ExportHTML(variant, data)
		return []byte(doc), err
	case FormatPDF:
		return ExportPDF(ctx, printer, variant, data)
	case FormatDOCX:
		return ExportDOCX(variant, data)
	default:
		return nil, &TemplateError{Message: fmt.Sprintf("unknown export format %q", format)}
	}
}

// ExportAll produces every requested format concurrently. The first
// failure cancels the remaining exports.
func ExportAll(ctx context.Context, printer PDFPrinter, variant Variant, data types.ResumeData, formats []Format) (map[Format][]byte, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[Format][]byte, len(formats))
	for _, format := range formats {
		g.Go(func() error {
			out, err := Export(gctx, printer, format, variant, data)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", format, err)
			}
			mu.Lock()
			results[format] = out
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
