package rendering

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper size in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// DefaultPDFTimeout bounds a single print job
const DefaultPDFTimeout = 30 * time.Second

// PDFPrinter turns an HTML document into PDF bytes
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter prints with a headless Chrome started per job.
// Requires Chrome/Chromium to be installed on the system.
type ChromePrinter struct {
	// ExecPath overrides the Chrome binary, e.g. from CHROME_PATH
	ExecPath string
	// Timeout bounds a print job; zero means DefaultPDFTimeout
	Timeout time.Duration
	Verbose bool
}

// PrintPDF loads html into a blank page and prints it with backgrounds on A4 paper
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if p.Verbose {
		log.Printf("[PDF] Printing %d bytes of HTML", len(html))
	}

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser printing failed: %w", err)
	}

	if p.Verbose {
		log.Printf("[PDF] Printed %d bytes", len(pdf))
	}
	return pdf, nil
}
