package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apify-community/actors-mcp-client/src/auth"
	"github.com/apify-community/actors-mcp-client/src/providers"
)

func testProvider(url, token string) *providers.SSEProvider {
	return &providers.SSEProvider{
		BaseProvider: providers.BaseProvider{Name: "apify", ProviderType: providers.ProviderSSE},
		URL:          url,
		Auth:         auth.NewBearerAuth(token),
	}
}

func TestCheck_Run(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Actors MCP Server is running"}`))
	}))
	defer ts.Close()

	check := NewCheck(nil)
	body, err := check.Run(context.Background(), testProvider(ts.URL, "good"))
	require.NoError(t, err)

	m, ok := body.(map[string]any)
	require.True(t, ok, "expected a JSON object, got %T", body)
	assert.Equal(t, "Actors MCP Server is running", m["message"])
}

func TestCheck_Run_InvalidToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	check := NewCheck(nil)

	_, err := check.Run(context.Background(), testProvider(ts.URL, "bad"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	// missing token must not silently succeed either
	prov := testProvider(ts.URL, "")
	prov.Auth = nil
	_, err = check.Run(context.Background(), prov)
	assert.Error(t, err)
}

func TestCheck_Run_NonJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	check := NewCheck(nil)
	_, err := check.Run(context.Background(), testProvider(ts.URL, "good"))
	assert.Error(t, err)
}

func TestCheck_Run_Unreachable(t *testing.T) {
	check := NewCheck(nil)
	_, err := check.Run(context.Background(), testProvider("http://127.0.0.1:0", "good"))
	assert.Error(t, err)
}
