// Package browser wraps chromedp with the small set of primitives the page
// objects need: guarded navigation, test-id locators and timed interactions.
package browser

import (
	"context"

	"github.com/chromedp/chromedp"

	"github.com/ternarybob/shopcheck/internal/common"
)

// Session owns one headless browser context. Each test creates its own
// session so tests never share tabs or cookies.
type Session struct {
	Ctx context.Context

	// Cleanup functions in reverse order (LIFO)
	cleanup []func()
}

// NewSession starts a headless browser context scoped to the given parent
// context. The caller must call Close when done.
func NewSession(parent context.Context, config *common.Config) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{Ctx: browserCtx}
	s.cleanup = append(s.cleanup, cancelAlloc)
	s.cleanup = append(s.cleanup, cancelBrowser)
	s.cleanup = append(s.cleanup, func() {
		_ = chromedp.Cancel(browserCtx)
	})

	// Launch the browser now so a broken Chrome install fails the session,
	// not the first page action.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the browser and allocator.
func (s *Session) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}
