package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apify-community/actors-mcp-client/src/auth"
)

type ProviderType string

const (
	ProviderSSE ProviderType = "sse"
)

// DefaultConnectTimeout bounds the session handshake when the provider does
// not configure one.
const DefaultConnectTimeout = 60 * time.Second

// Provider is implemented by all concrete provider types.
type Provider interface {
	// Type returns the discriminator.
	Type() ProviderType
}

// BaseProvider holds fields common to every provider.
type BaseProvider struct {
	Name         string       `json:"name" yaml:"name"`
	ProviderType ProviderType `json:"provider_type" yaml:"provider_type"`
}

func (b *BaseProvider) Type() ProviderType {
	return b.ProviderType
}

// SSEProvider describes a remote MCP server reachable over SSE. URL is the
// service base; the event stream itself lives at URL + "/sse".
type SSEProvider struct {
	BaseProvider   `yaml:",inline"`
	URL            string            `json:"url" yaml:"url"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth           auth.Auth         `json:"-" yaml:"-"`
	ConnectTimeout int               `json:"connect_timeout,omitempty" yaml:"connect_timeout,omitempty"` // seconds
}

func (p *SSEProvider) Validate() error {
	if p.URL == "" {
		return errors.New("sse provider: url is required")
	}
	if p.Auth != nil {
		if err := p.Auth.Validate(); err != nil {
			return fmt.Errorf("sse provider %q: %w", p.Name, err)
		}
	}
	return nil
}

// SSEEndpoint returns the URL of the event stream.
func (p *SSEProvider) SSEEndpoint() string {
	return strings.TrimRight(p.URL, "/") + "/sse"
}

// RequestHeaders merges auth headers with the configured extra headers.
// Configured headers win on conflict.
func (p *SSEProvider) RequestHeaders() map[string]string {
	merged := make(map[string]string, len(p.Headers)+1)
	if p.Auth != nil {
		for k, v := range p.Auth.Headers() {
			merged[k] = v
		}
	}
	for k, v := range p.Headers {
		merged[k] = v
	}
	return merged
}

// ConnectTimeoutDuration returns the configured handshake timeout, or the
// default when unset.
func (p *SSEProvider) ConnectTimeoutDuration() time.Duration {
	if p.ConnectTimeout <= 0 {
		return DefaultConnectTimeout
	}
	return time.Duration(p.ConnectTimeout) * time.Second
}

// UnmarshalSSEProvider decodes an SSE provider, resolving the auth union.
func UnmarshalSSEProvider(data []byte) (*SSEProvider, error) {
	type Alias SSEProvider
	aux := struct {
		*Alias
		Auth json.RawMessage `json:"auth"`
	}{Alias: (*Alias)(&SSEProvider{})}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, err
	}
	sp := (*SSEProvider)(aux.Alias)
	if len(aux.Auth) > 0 && string(aux.Auth) != "null" {
		a, err := auth.UnmarshalAuth(aux.Auth)
		if err != nil {
			return nil, err
		}
		sp.Auth = a
	}
	return sp, nil
}

// UnmarshalProvider decodes a provider by its provider_type discriminator.
func UnmarshalProvider(data []byte) (Provider, error) {
	var head struct {
		ProviderType ProviderType `json:"provider_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.ProviderType {
	case ProviderSSE:
		return UnmarshalSSEProvider(data)
	default:
		return nil, fmt.Errorf("unknown provider_type %q", head.ProviderType)
	}
}
