package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const snapshotTimeout = 30 * time.Second

// SnapshotService captures dashboard pages as PNG images with headless Chrome
type SnapshotService struct {
	baseURL    string
	chromePath string
}

// NewSnapshotService creates a new SnapshotService.
// baseURL is where this server is reachable from the browser (e.g. "http://localhost:8051").
func NewSnapshotService(baseURL, chromePath string) *SnapshotService {
	return &SnapshotService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		chromePath: chromePath,
	}
}

// Ensure SnapshotService implements SnapshotServiceInterface
var _ SnapshotServiceInterface = (*SnapshotService)(nil)

// PageURL returns the absolute URL of a dashboard variant with its query
func (s *SnapshotService) PageURL(variant string, query url.Values) string {
	u := fmt.Sprintf("%s/%s/", s.baseURL, variant)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// CaptureDashboard renders a dashboard variant and returns a full-page PNG
func (s *SnapshotService) CaptureDashboard(ctx context.Context, variant string, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	browserCtx, browserCancel := newBrowserContext(ctx, s.chromePath)
	defer browserCancel()

	target := s.PageURL(variant, query)
	log.Printf("📸 CaptureDashboard: %s", target)

	var png []byte
	err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return page.Enable().Do(ctx)
		}),
		chromedp.EmulateViewport(1280, 900),
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		// charts are iframes rendered client side
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		log.Printf("❌ CaptureDashboard: %v", err)
		return nil, fmt.Errorf("failed to capture dashboard: %w", err)
	}

	log.Printf("✓ Dashboard captured: variant=%s, %d bytes", variant, len(png))
	return png, nil
}
