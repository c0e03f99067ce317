package repository

import (
	"context"
	"testing"

	"github.com/apify-community/actors-mcp-client/src/providers"
	"github.com/apify-community/actors-mcp-client/src/tools"
)

func TestInMemoryToolRepository_CRUD(t *testing.T) {
	repo := NewInMemoryToolRepository()
	ctx := context.Background()
	prov := &providers.SSEProvider{
		BaseProvider: providers.BaseProvider{Name: "apify", ProviderType: providers.ProviderSSE},
		URL:          "https://actors-mcp-server.apify.actor",
	}
	ts := []tools.Tool{{Name: "apify/rag-web-browser"}}

	if err := repo.SaveProviderWithTools(ctx, prov, ts); err != nil {
		t.Fatalf("save error: %v", err)
	}

	if p, err := repo.GetProvider(ctx, "apify"); err != nil || p == nil {
		t.Fatalf("get provider failed: %v", err)
	}
	if all, err := repo.GetTools(ctx); err != nil || len(all) != 1 {
		t.Fatalf("get tools failed: %v", err)
	}
	if _, err := repo.GetToolsByProvider(ctx, "apify"); err != nil {
		t.Fatalf("get tools by provider failed: %v", err)
	}
	if tool, err := repo.GetTool(ctx, "apify/rag-web-browser"); err != nil || tool == nil {
		t.Fatalf("get tool failed: %v", err)
	}
	if _, err := repo.GetTool(ctx, "nope"); err == nil {
		t.Fatal("expected error for unknown tool")
	}

	if err := repo.RemoveProvider(ctx, "apify"); err != nil {
		t.Fatalf("remove provider failed: %v", err)
	}
	if err := repo.RemoveProvider(ctx, "apify"); err == nil {
		t.Fatal("expected error removing provider twice")
	}
}

type bogusProvider struct{ providers.BaseProvider }

func TestInMemoryToolRepository_Unsupported(t *testing.T) {
	repo := NewInMemoryToolRepository()
	bp := &bogusProvider{providers.BaseProvider{Name: "bogus"}}
	if err := repo.SaveProviderWithTools(context.Background(), bp, nil); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestInMemoryToolRepository_CancelledContext(t *testing.T) {
	repo := NewInMemoryToolRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prov := &providers.SSEProvider{BaseProvider: providers.BaseProvider{Name: "apify"}}
	if err := repo.SaveProviderWithTools(ctx, prov, nil); err == nil {
		t.Fatal("expected context error")
	}
}
