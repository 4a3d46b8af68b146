package browser

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ternarybob/shopcheck/internal/common"
	"github.com/ternarybob/shopcheck/internal/waitfor"
)

// pathPattern is the allow-list for relative navigation paths. Anything
// outside it is rejected before a navigation is issued, so test code cannot
// be pointed at arbitrary URLs through string concatenation.
var pathPattern = regexp.MustCompile(`^[A-Za-z0-9/._?&=%-]+$`)

// Page is the shared navigation and locator helper embedded by every screen
// object. It wraps a single browser-tab context and owns no state beyond
// the context reference and timeouts.
type Page struct {
	ctx               context.Context
	baseURL           string
	navigationTimeout time.Duration
	actionTimeout     time.Duration
}

// NewPage binds a page helper to a session context.
func NewPage(session *Session, config *common.Config) *Page {
	return &Page{
		ctx:               session.Ctx,
		baseURL:           strings.TrimRight(config.BaseURL, "/"),
		navigationTimeout: config.NavigationTimeout,
		actionTimeout:     config.ExpectTimeout,
	}
}

// Context exposes the underlying tab context for helpers that run raw
// chromedp actions (waits, metrics, screenshots).
func (p *Page) Context() context.Context {
	return p.ctx
}

// ExpectTimeout returns the configured assertion timeout.
func (p *Page) ExpectTimeout() time.Duration {
	return p.actionTimeout
}

// ValidatePath checks a relative navigation path: it must be non-empty,
// must not be an absolute URL and must only contain allow-listed
// characters.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("navigation path must not be empty")
	}
	if strings.Contains(path, "://") || strings.HasPrefix(path, "//") {
		return fmt.Errorf("navigation path %q must be relative, absolute URLs are not allowed", path)
	}
	if !pathPattern.MatchString(path) {
		return fmt.Errorf("navigation path %q contains disallowed characters", path)
	}
	return nil
}

// Goto navigates to a relative path under the configured base URL and
// blocks until the page load event or the navigation timeout.
func (p *Page) Goto(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	ctx, cancel := context.WithTimeout(p.ctx, p.navigationTimeout)
	defer cancel()

	target := p.baseURL + path
	if err := chromedp.Run(ctx,
		chromedp.Navigate(target),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("navigation to %s did not complete within %v: %w", target, p.navigationTimeout, err)
	}
	return nil
}

// ByTestID returns the selector for a stable data-test attribute. No I/O
// happens until the selector is used by an action.
func ByTestID(id string) string {
	return fmt.Sprintf(`[data-test=%q]`, id)
}

// Click waits for the element to be visible and clicks it.
func (p *Page) Click(selector string) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.actionTimeout)
	defer cancel()

	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// Fill clears the field and types the given value.
func (p *Page) Fill(selector, value string) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.actionTimeout)
	defer cancel()

	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

// Text waits for the element and returns its text content.
func (p *Page) Text(selector string) (string, error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.actionTimeout)
	defer cancel()

	var text string
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Text(selector, &text, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", selector, err)
	}
	return strings.TrimSpace(text), nil
}

// WaitVisible blocks until the element is visible or the timeout elapses.
func (p *Page) WaitVisible(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("element %s did not become visible within %v: %w", selector, timeout, err)
	}
	return nil
}

// Visible reports whether at least one matching element is currently
// rendered. Absence is a valid answer, not an error.
func (p *Page) Visible(selector string) (bool, error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.actionTimeout)
	defer cancel()

	var visible bool
	expr := fmt.Sprintf(
		`(() => { const el = document.querySelector(%q); return el !== null && el.offsetParent !== null; })()`,
		selector,
	)
	if err := chromedp.Run(ctx, chromedp.Evaluate(expr, &visible)); err != nil {
		return false, fmt.Errorf("failed to check visibility of %s: %w", selector, err)
	}
	return visible, nil
}

// Count returns the number of elements matching the selector.
func (p *Page) Count(selector string) (int, error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.actionTimeout)
	defer cancel()

	var count int
	expr := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(expr, &count)); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", selector, err)
	}
	return count, nil
}

// CurrentURL returns the tab's current location.
func (p *Page) CurrentURL() (string, error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.actionTimeout)
	defer cancel()

	var location string
	if err := chromedp.Run(ctx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("failed to read current URL: %w", err)
	}
	return location, nil
}

// BoxProbe returns a probe reading the bounding box of the first element
// matching the selector, for stability waits. A missing element is a probe
// error, so the wait keeps retrying until the element appears.
func (p *Page) BoxProbe(selector string) waitfor.BoxProbe {
	expr := fmt.Sprintf(`
		(() => {
			const el = document.querySelector(%q);
			if (!el) throw new Error("no matching element");
			const r = el.getBoundingClientRect();
			return {x: r.x, y: r.y, width: r.width, height: r.height};
		})()
	`, selector)
	return func(ctx context.Context) (waitfor.Box, error) {
		var raw struct {
			X      float64 `json:"x"`
			Y      float64 `json:"y"`
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		}
		if err := p.Evaluate(expr, &raw); err != nil {
			return waitfor.Box{}, fmt.Errorf("failed to read bounding box of %s: %w", selector, err)
		}
		return waitfor.Box{X: raw.X, Y: raw.Y, Width: raw.Width, Height: raw.Height}, nil
	}
}

// Evaluate runs a JavaScript expression and decodes the result.
func (p *Page) Evaluate(expr string, result interface{}) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.actionTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.Evaluate(expr, result)); err != nil {
		return fmt.Errorf("failed to evaluate expression: %w", err)
	}
	return nil
}
