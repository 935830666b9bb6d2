package output

import (
	"context"

	"mcp-agent/internal/domain/entity"
)

// ToolPort is a built-in tool. Execute must not block.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}

// RemoteToolProvider is an initialized session with a remote tool server.
type RemoteToolProvider interface {
	ListTools(ctx context.Context) ([]entity.RawRemoteTool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// ToolDispatcher never fails: errors come back as ToolResult content.
type ToolDispatcher interface {
	Execute(ctx context.Context, name string, args map[string]any) entity.ToolResult
}
