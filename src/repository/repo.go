package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/apify-community/actors-mcp-client/src/providers"
	"github.com/apify-community/actors-mcp-client/src/tools"
)

// ToolRepository stores the providers a run has registered and the tools
// discovered on them.
type ToolRepository interface {
	SaveProviderWithTools(ctx context.Context, prov providers.Provider, ts []tools.Tool) error
	GetProvider(ctx context.Context, providerName string) (providers.Provider, error)
	GetTools(ctx context.Context) ([]tools.Tool, error)
	GetToolsByProvider(ctx context.Context, providerName string) ([]tools.Tool, error)
	GetTool(ctx context.Context, toolName string) (*tools.Tool, error)
	RemoveProvider(ctx context.Context, providerName string) error
}

// InMemoryToolRepository keeps everything in maps guarded by a RWMutex.
type InMemoryToolRepository struct {
	tools     map[string][]tools.Tool // providerName -> tools
	providers map[string]providers.Provider
	mu        sync.RWMutex
}

func NewInMemoryToolRepository() *InMemoryToolRepository {
	return &InMemoryToolRepository{
		tools:     make(map[string][]tools.Tool),
		providers: make(map[string]providers.Provider),
	}
}

func (r *InMemoryToolRepository) SaveProviderWithTools(ctx context.Context, prov providers.Provider, ts []tools.Tool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	sp, ok := prov.(*providers.SSEProvider)
	if !ok {
		return fmt.Errorf("unsupported provider type %T", prov)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[sp.Name] = prov
	r.tools[sp.Name] = ts
	return nil
}

func (r *InMemoryToolRepository) GetProvider(ctx context.Context, providerName string) (providers.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prov, ok := r.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", providerName)
	}
	return prov, nil
}

func (r *InMemoryToolRepository) GetTools(ctx context.Context) ([]tools.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []tools.Tool
	for _, ts := range r.tools {
		all = append(all, ts...)
	}
	return all, nil
}

func (r *InMemoryToolRepository) GetToolsByProvider(ctx context.Context, providerName string) ([]tools.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ts, ok := r.tools[providerName]
	if !ok {
		return nil, fmt.Errorf("no tools found for provider %s", providerName)
	}
	return ts, nil
}

func (r *InMemoryToolRepository) GetTool(ctx context.Context, toolName string) (*tools.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ts := range r.tools {
		for _, tool := range ts {
			if tool.Name == toolName {
				return &tool, nil
			}
		}
	}
	return nil, fmt.Errorf("tool not found: %s", toolName)
}

func (r *InMemoryToolRepository) RemoveProvider(ctx context.Context, providerName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[providerName]; !ok {
		return fmt.Errorf("provider not found: %s", providerName)
	}
	delete(r.providers, providerName)
	delete(r.tools, providerName)
	return nil
}
