package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Snapshot formats
const (
	SnapshotPNG = "png"
	SnapshotPDF = "pdf"
)

// SnapshotOptions controls how the page is captured
type SnapshotOptions struct {
	Format string
	Width  int64
	Height int64
	// Settle gives the reveal animations time to finish before capture
	Settle  time.Duration
	Timeout time.Duration
}

// DefaultSnapshotOptions returns a 1200x630 Open Graph image
func DefaultSnapshotOptions() SnapshotOptions {
	return SnapshotOptions{
		Format:  SnapshotPNG,
		Width:   1200,
		Height:  630,
		Settle:  1500 * time.Millisecond,
		Timeout: 30 * time.Second,
	}
}

// getChromePath returns the Chrome executable path from environment variable
func getChromePath() string {
	return os.Getenv("CHROME_PATH")
}

// SnapshotPage renders url with headless Chrome and returns the PNG or PDF bytes
func SnapshotPage(ctx context.Context, url string, options SnapshotOptions) ([]byte, error) {
	if options.Format != SnapshotPNG && options.Format != SnapshotPDF {
		return nil, fmt.Errorf("unsupported snapshot format %q", options.Format)
	}
	if options.Width <= 0 || options.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", options.Width, options.Height)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(int(options.Width), int(options.Height)),
	)
	// Custom Chrome path (headless-shell in Docker)
	if chromePath := getChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if options.Timeout > 0 {
		var timeoutCancel context.CancelFunc
		browserCtx, timeoutCancel = context.WithTimeout(browserCtx, options.Timeout)
		defer timeoutCancel()
	}

	var buf []byte
	capture := chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		if options.Format == SnapshotPDF {
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return err
		}
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			Do(ctx)
		return err
	})

	err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(options.Width, options.Height, 1, false),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(options.Settle),
		capture,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s: %w", url, err)
	}
	return buf, nil
}

// SnapshotContentType maps a snapshot format to its MIME type
func SnapshotContentType(format string) string {
	if format == SnapshotPDF {
		return "application/pdf"
	}
	return "image/png"
}
