package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, false)

	var result map[string]string
	err := client.GetJSON(context.Background(), "/api/status", &result)
	require.NoError(t, err)
	assert.Equal(t, "ok", result["status"])
}

func TestGetJSONErrorIncludesBodyOutsideProduction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, false)

	err := client.GetJSON(context.Background(), "/api/status", &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestGetJSONErrorOmitsBodyInProduction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "secret internal detail", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, true)

	err := client.GetJSON(context.Background(), "/api/status", &struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.NotContains(t, err.Error(), "secret internal detail")
}

func TestPostJSONSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "value", payload["key"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, false)

	err := client.PostJSON(context.Background(), "/api/things", map[string]string{"key": "value"}, nil)
	assert.NoError(t, err)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	client := New("http://localhost:1", 5*time.Second, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Do(ctx, http.MethodGet, "/", nil)
	assert.Error(t, err)
}
