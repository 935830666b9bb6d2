package service

import (
	"context"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"
)

// DiscoverRemoteTools lists the provider's tools once. It returns nil when
// the provider is missing or the listing fails, which callers treat as
// "built-ins only".
func DiscoverRemoteTools(ctx context.Context, provider output.RemoteToolProvider, logger output.LoggerPort) []entity.RawRemoteTool {
	if provider == nil {
		logger.Warn("No remote tool provider, using built-in tools only")
		return nil
	}

	tools, err := provider.ListTools(ctx)
	if err != nil {
		logger.Warn("Remote tool discovery failed, using built-in tools only", "error", err)
		return nil
	}

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	logger.Info("Remote tools discovered", "count", len(tools), "names", names)

	return tools
}
