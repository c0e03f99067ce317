// preflight.go
package preflight

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	json "github.com/apify-community/actors-mcp-client/src/json"
	"github.com/apify-community/actors-mcp-client/src/providers"
)

// Check performs the out-of-band reachability probe against a provider's
// base URL before any session is opened.
type Check struct {
	client *http.Client
	logger func(format string, args ...interface{})
}

func NewCheck(logger func(format string, args ...interface{})) *Check {
	if logger == nil {
		logger = func(format string, args ...interface{}) {}
	}
	return &Check{
		client: &http.Client{},
		logger: logger,
	}
}

// Run issues a GET against the provider base URL with its auth headers and
// returns the decoded JSON body. Any network error, non-2xx status or
// non-JSON body fails the check.
func (c *Check) Run(ctx context.Context, prov *providers.SSEProvider) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, prov.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	for k, v := range prov.RequestHeaders() {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Fail fast on non-2xx status codes
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("preflight %q error: %s: %s", prov.Name, resp.Status, string(body))
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("preflight %q: decoding response: %w", prov.Name, err)
	}
	c.logger("Preflight against %s succeeded", prov.URL)
	return body, nil
}
