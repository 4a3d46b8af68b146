package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ternarybob/shopcheck/internal/httpclient"
	"github.com/ternarybob/shopcheck/test/common"
)

func newClient(t *testing.T) *httpclient.Client {
	t.Helper()
	env := common.Setup(t)
	return httpclient.New(env.Config.BaseURL, env.Config.Timeout, env.Config.IsProduction())
}

func TestRootServesLoginPage(t *testing.T) {
	common.SkipIfNotInShard(t)
	client := newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from /, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	page := string(body)
	for _, marker := range []string{`data-test="username"`, `data-test="password"`, `data-test="login-button"`} {
		if !strings.Contains(page, marker) {
			t.Errorf("Login page is missing %s", marker)
		}
	}
}

func TestUnknownPathReturnsError(t *testing.T) {
	common.SkipIfNotInShard(t)
	client := newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/no-such-page-"+time.Now().Format("150405"))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	// Static hosting serves a redirect or an error page, never a 2xx
	// with the login form.
	if resp.StatusCode == http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(body), `data-test="login-button"`) {
			t.Skip("Target serves the app shell for unknown paths")
		}
	}
}

func TestStaticAssetsAreServed(t *testing.T) {
	common.SkipIfNotInShard(t)
	client := newClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/favicon.ico")
	if err != nil {
		t.Fatalf("GET /favicon.ico failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		t.Errorf("Expected non-5xx for favicon, got %d", resp.StatusCode)
	}
}
