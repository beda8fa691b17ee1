package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/psidex/graphedit/internal/lib"
)

type Config struct {
	Timeout time.Duration
	Width   int64
	Height  int64
	// Settle is how long to wait after load for the graph layout to finish.
	Settle time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Width:   1600,
		Height:  1000,
		Settle:  2 * time.Second,
	}
}

type Capturer struct {
	logger *slog.Logger
	cfg    Config
}

func NewCapturer(logger *slog.Logger, cfg Config) *Capturer {
	return &Capturer{logger: lib.OrNop(logger), cfg: cfg}
}

// Capture loads url in headless Chrome and returns a PNG of the viewport. url
// can be the served editor page or a file:// URL of an exported echarts page.
func (c *Capturer) Capture(ctx context.Context, url string) ([]byte, error) {
	startTime := time.Now()

	// Ensure any long running Chrome tasks are cancelled when we exit.
	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer timeoutCancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.WindowSize(int(c.cfg.Width), int(c.cfg.Height)),
		)...,
	)
	defer allocCancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var png []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(c.cfg.Width, c.cfg.Height),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(c.cfg.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			png, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing %s: %w", url, err)
	}

	c.logger.Debug("Captured snapshot",
		"url", url,
		"bytes", len(png),
		"duration", time.Since(startTime),
	)
	return png, nil
}
