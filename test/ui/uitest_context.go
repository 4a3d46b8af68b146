// uitest_context.go - Shared UI test context and helpers.
// NOTE: This is NOT a test file - it contains shared test infrastructure.

package ui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ternarybob/shopcheck/internal/browser"
	"github.com/ternarybob/shopcheck/internal/pages"
	"github.com/ternarybob/shopcheck/internal/testdata"
	"github.com/ternarybob/shopcheck/internal/visual"
	"github.com/ternarybob/shopcheck/test/common"
)

// DefaultTestTimeout bounds a single UI test end to end.
const DefaultTestTimeout = 2 * time.Minute

// UITestContext holds shared state for UI tests: the browser session, a
// page handle and one object per application screen.
type UITestContext struct {
	T        *testing.T
	Env      *common.TestEnvironment
	Session  *browser.Session
	Page     *browser.Page
	Login    *pages.Login
	Products *pages.Products
	Cart     *pages.Cart
	Checkout *pages.Checkout

	// Screenshot counter for sequential naming
	screenshotNum int

	cleanup []func()
}

// NewUITestContext creates a fresh browser session and the page objects
// for one test. Tests that are not part of this process's shard are
// skipped before any browser starts.
func NewUITestContext(t *testing.T) *UITestContext {
	common.SkipIfNotInShard(t)

	env := common.Setup(t)

	ctx, cancelTimeout := context.WithTimeout(context.Background(), DefaultTestTimeout)

	session, err := browser.NewSession(ctx, env.Config)
	if err != nil {
		cancelTimeout()
		t.Fatalf("Failed to start browser session: %v", err)
	}

	page := browser.NewPage(session, env.Config)

	utc := &UITestContext{
		T:        t,
		Env:      env,
		Session:  session,
		Page:     page,
		Login:    pages.NewLogin(page),
		Products: pages.NewProducts(page),
		Cart:     pages.NewCart(page),
		Checkout: pages.NewCheckout(page),
		cleanup:  make([]func(), 0),
	}

	utc.cleanup = append(utc.cleanup, cancelTimeout)
	utc.cleanup = append(utc.cleanup, session.Close)

	return utc
}

// Cleanup releases all resources. Call this with defer. A failure
// screenshot is captured first when the artifact mode asks for one.
func (utc *UITestContext) Cleanup() {
	mode := utc.Env.Config.Artifacts.ScreenshotMode
	if mode == "on" || (mode == "only-on-failure" && utc.T.Failed()) {
		if err := utc.Screenshot("final"); err != nil {
			utc.T.Logf("Warning: failed to capture final screenshot: %v", err)
		}
	}

	for i := len(utc.cleanup) - 1; i >= 0; i-- {
		utc.cleanup[i]()
	}
}

// Screenshot takes a full page screenshot with a sequential number prefix.
func (utc *UITestContext) Screenshot(name string) error {
	utc.screenshotNum++
	fullName := fmt.Sprintf("%02d_%s_%s", utc.screenshotNum, common.SanitizeTestName(utc.T.Name()), name)
	_, err := visual.CaptureFull(utc.Page.Context(), utc.Env.RunDir, fullName)
	return err
}

// LoggedIn signs in with the standard account and verifies the products
// page loaded. Most tests start here.
func (utc *UITestContext) LoggedIn() {
	utc.T.Helper()

	cred := testdata.MustGet(testdata.Standard)
	if err := utc.Login.Open(); err != nil {
		utc.T.Fatalf("Failed to open login page: %v", err)
	}
	if err := utc.Login.Login(cred.Username, cred.Password); err != nil {
		utc.T.Fatalf("Failed to submit login: %v", err)
	}
	if err := utc.Login.ExpectOnProductsPage(); err != nil {
		utc.T.Fatalf("Login did not reach products page: %v", err)
	}
}
