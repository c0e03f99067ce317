// session.go
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/apify-community/actors-mcp-client/src/providers"
)

const (
	clientName    = "actors-mcp-client"
	clientVersion = "1.0.0"
)

// Session is a stateful MCP channel over an SSE stream. It is owned by a
// single run: Open it, Initialize it, use it, and Close it on every exit
// path. Close is idempotent.
type Session struct {
	client    *mcpclient.Client
	prov      *providers.SSEProvider
	logger    func(format string, args ...interface{})
	cancel    context.CancelFunc
	closeOnce sync.Once
	closeErr  error
}

// Open connects to the provider's SSE endpoint with its auth headers. The
// connect timeout bounds session establishment; once established, the
// stream stays up until Close and its lifetime is governed by ctx.
func Open(ctx context.Context, prov *providers.SSEProvider, logger func(format string, args ...interface{})) (*Session, error) {
	if logger == nil {
		logger = func(format string, args ...interface{}) {}
	}
	if err := prov.Validate(); err != nil {
		return nil, err
	}

	cli, err := mcpclient.NewSSEMCPClient(prov.SSEEndpoint(), transport.WithHeaders(prov.RequestHeaders()))
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE client for %q: %w", prov.Name, err)
	}

	// The stream inherits the context given to Start, so a deadline there
	// would also kill an established stream. Cancel via a watchdog timer
	// instead; it only fires while establishment is still in flight.
	streamCtx, cancel := context.WithCancel(ctx)
	timeout := prov.ConnectTimeoutDuration()
	watchdog := time.AfterFunc(timeout, cancel)

	err = cli.Start(streamCtx)
	established := watchdog.Stop()
	if err != nil || !established {
		cancel()
		cli.Close()
		if !established {
			return nil, fmt.Errorf("failed to connect to %s within %s: %w", prov.SSEEndpoint(), timeout, context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", prov.SSEEndpoint(), err)
	}
	logger("Connected to %s", prov.SSEEndpoint())
	return &Session{client: cli, prov: prov, logger: logger, cancel: cancel}, nil
}

// Initialize performs the protocol handshake. The provider's connect timeout
// bounds the handshake only, not the stream.
func (s *Session) Initialize(ctx context.Context) (*mcp.InitializeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.prov.ConnectTimeoutDuration())
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: clientVersion}

	res, err := s.client.Initialize(ctx, initReq)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}
	s.logger("Initialized session with %s %s", res.ServerInfo.Name, res.ServerInfo.Version)
	return res, nil
}

// ListTools requests the set of invocable remote tools.
func (s *Session) ListTools(ctx context.Context) (*mcp.ListToolsResult, error) {
	res, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	return res, nil
}

// CallTool invokes a named tool with an argument map.
func (s *Session) CallTool(ctx context.Context, toolName string, args map[string]any) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = toolName
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tool %q call failed: %w", toolName, err)
	}
	return res, nil
}

// Close releases the stream and the session. Safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.client.Close()
		s.cancel()
		s.logger("Closed session with provider '%s'", s.prov.Name)
	})
	return s.closeErr
}
