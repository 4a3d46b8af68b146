// Package healthcheck probes the target application before a suite run. It
// is deliberately browser-free: a plain HTTP round trip plus an HTML parse
// is enough to decide whether spinning up Chrome is worthwhile.
package healthcheck

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/shopcheck/internal/common"
)

// Result describes one health-check probe.
type Result struct {
	Healthy        bool
	StatusCode     int
	LoginFormFound bool
	Detail         string
}

// Run loads the configured base URL and verifies the response is successful
// and the login form is present. A transport failure is returned as an
// unhealthy result, not an error; errors are reserved for misuse.
func Run(ctx context.Context, config *common.Config) *Result {
	client := &http.Client{Timeout: config.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL, nil)
	if err != nil {
		return &Result{Healthy: false, Detail: fmt.Sprintf("invalid base URL: %v", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		detail := "target unreachable"
		if !config.IsProduction() {
			detail = fmt.Sprintf("target unreachable: %v", err)
		}
		return &Result{Healthy: false, Detail: detail}
	}
	defer resp.Body.Close()

	result := &Result{StatusCode: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		result.Detail = fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, config.BaseURL)
		return result
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		result.Detail = fmt.Sprintf("response is not parseable HTML: %v", err)
		return result
	}

	result.LoginFormFound = doc.Find(`input[data-test="username"]`).Length() > 0 &&
		doc.Find(`input[data-test="password"]`).Length() > 0

	if !result.LoginFormFound {
		result.Detail = "login form not found on landing page"
		return result
	}

	result.Healthy = true
	return result
}
