// file: client.go
package actorsmcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/apify-community/actors-mcp-client/src/config"
	json "github.com/apify-community/actors-mcp-client/src/json"
	"github.com/apify-community/actors-mcp-client/src/preflight"
	"github.com/apify-community/actors-mcp-client/src/providers"
	"github.com/apify-community/actors-mcp-client/src/repository"
	"github.com/apify-community/actors-mcp-client/src/session"
	"github.com/apify-community/actors-mcp-client/src/tools"
)

// DefaultToolName is the tool invoked when none is configured.
const DefaultToolName = "apify/rag-web-browser"

// DefaultToolArgs returns the default argument map for DefaultToolName.
func DefaultToolArgs() map[string]any {
	return map[string]any{"query": "example.com", "maxResults": 3}
}

// Client runs the smoke check against a single SSE provider: preflight GET,
// scoped MCP session, tool discovery, one tool invocation.
type Client struct {
	config   *config.ClientConfig
	provider *providers.SSEProvider
	repo     repository.ToolRepository
	check    *preflight.Check
	out      io.Writer
	logger   func(format string, args ...interface{})
	toolName string
	toolArgs map[string]any
}

// Option customizes a Client.
type Option func(*Client)

// WithOutput redirects the human-readable result prints. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Client) { c.out = w }
}

// WithLogger installs a printf-style diagnostic logger. Defaults to a no-op.
func WithLogger(logger func(format string, args ...interface{})) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTool overrides the tool invoked after discovery.
func WithTool(name string, args map[string]any) Option {
	return func(c *Client) {
		c.toolName = name
		c.toolArgs = args
	}
}

// NewClient builds a Client from a config whose providers file names at
// least one SSE provider. The first provider is used.
func NewClient(cfg *config.ClientConfig, repo repository.ToolRepository, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.NewClientConfig()
	}
	provs, err := cfg.LoadProviders()
	if err != nil {
		return nil, err
	}
	if len(provs) == 0 {
		return nil, errors.New("no SSE providers configured")
	}
	c, err := NewClientWithProvider(provs[0], repo, opts...)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return c, nil
}

// NewClientWithProvider builds a Client around an already-constructed
// provider.
func NewClientWithProvider(prov *providers.SSEProvider, repo repository.ToolRepository, opts ...Option) (*Client, error) {
	if prov == nil {
		return nil, errors.New("nil provider")
	}
	if err := prov.Validate(); err != nil {
		return nil, err
	}
	if repo == nil {
		repo = repository.NewInMemoryToolRepository()
	}
	c := &Client{
		provider: prov,
		repo:     repo,
		out:      os.Stdout,
		logger:   func(format string, args ...interface{}) {},
		toolName: DefaultToolName,
		toolArgs: DefaultToolArgs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.check = preflight.NewCheck(c.logger)
	return c, nil
}

// Run performs the whole linear flow. Every step either succeeds and
// proceeds, or returns an error that aborts the run. The session is released
// on every exit path. An empty tool list prints a notice and returns nil.
func (c *Client) Run(ctx context.Context) error {
	body, err := c.check.Run(ctx, c.provider)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "MCP Server Response: %v\n\n", body)

	sess, err := session.Open(ctx, c.provider, c.logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	if _, err := sess.Initialize(ctx); err != nil {
		return err
	}

	toolsRes, err := sess.ListTools(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(toolsRes)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Available Tools: %s\n\n", raw)

	if len(toolsRes.Tools) == 0 {
		fmt.Fprintln(c.out, "No tools available!")
		return nil
	}

	discovered := tools.FromMCP(toolsRes.Tools)
	if err := c.repo.SaveProviderWithTools(ctx, c.provider, discovered); err != nil {
		return err
	}
	if _, err := c.repo.GetTool(ctx, c.toolName); err != nil {
		return fmt.Errorf("tool %q not offered by provider %q", c.toolName, c.provider.Name)
	}

	result, err := sess.CallTool(ctx, c.toolName, c.toolArgs)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Tools Call Result:")
	for _, content := range result.Content {
		c.printContent(content)
	}
	return nil
}

// printContent renders one content item of a call result.
func (c *Client) printContent(content mcp.Content) {
	switch v := content.(type) {
	case mcp.TextContent:
		fmt.Fprintln(c.out, v.Text)
	default:
		raw, err := json.Marshal(content)
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", content)
			return
		}
		fmt.Fprintln(c.out, string(raw))
	}
}
