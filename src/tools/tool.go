package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolInputOutputSchema mirrors the JSON schema description of a tool's
// arguments.
type ToolInputOutputSchema struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
	Title      string                 `json:"title,omitempty"`
}

// Tool holds the metadata for a single remote tool.
type Tool struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Inputs      ToolInputOutputSchema `json:"inputs"`
}

// FromMCP converts mcp-go tool descriptors into our metadata form.
func FromMCP(in []mcp.Tool) []Tool {
	out := make([]Tool, len(in))
	for i, tl := range in {
		out[i] = Tool{
			Name:        tl.Name,
			Description: tl.Description,
			Inputs: ToolInputOutputSchema{
				Type:       tl.InputSchema.Type,
				Properties: tl.InputSchema.Properties,
				Required:   tl.InputSchema.Required,
				Title:      tl.Annotations.Title,
			},
		}
	}
	return out
}

// Names returns the tool names in order.
func Names(in []Tool) []string {
	names := make([]string, len(in))
	for i, t := range in {
		names[i] = t.Name
	}
	return names
}
