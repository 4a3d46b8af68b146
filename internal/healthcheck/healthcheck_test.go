package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/shopcheck/internal/common"
)

const loginPageHTML = `<!doctype html>
<html><body>
<form>
  <input data-test="username" placeholder="Username">
  <input data-test="password" placeholder="Password">
  <input data-test="login-button" type="submit">
</form>
</body></html>`

func configFor(url string) *common.Config {
	config := common.NewDefaultConfig()
	config.BaseURL = url
	config.Timeout = 5 * time.Second
	return config
}

func TestRunHealthyWhenLoginFormPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginPageHTML))
	}))
	defer server.Close()

	result := Run(context.Background(), configFor(server.URL))
	assert.True(t, result.Healthy)
	assert.True(t, result.LoginFormFound)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestRunUnhealthyOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	result := Run(context.Background(), configFor(server.URL))
	assert.False(t, result.Healthy)
	assert.Equal(t, http.StatusServiceUnavailable, result.StatusCode)
	assert.Contains(t, result.Detail, "503")
}

func TestRunUnhealthyWhenLoginFormMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Coming soon</h1></body></html>`))
	}))
	defer server.Close()

	result := Run(context.Background(), configFor(server.URL))
	assert.False(t, result.Healthy)
	assert.False(t, result.LoginFormFound)
	assert.Contains(t, result.Detail, "login form")
}

func TestRunUnhealthyWhenUnreachable(t *testing.T) {
	config := configFor("http://127.0.0.1:1")
	config.Timeout = time.Second

	result := Run(context.Background(), config)
	assert.False(t, result.Healthy)
	assert.Contains(t, result.Detail, "unreachable")
}

func TestRunProductionHidesTransportDetail(t *testing.T) {
	config := configFor("http://127.0.0.1:1")
	config.Environment = common.EnvProduction
	config.Timeout = time.Second

	result := Run(context.Background(), config)
	assert.False(t, result.Healthy)
	assert.Equal(t, "target unreachable", result.Detail)
}
