package service

import (
	"context"
	"fmt"
	"time"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"
)

var _ output.ToolDispatcher = (*Dispatcher)(nil)

const emptyResultContent = "Error: function not implemented or execution failed"

const (
	toolKindBuiltin = "builtin"
	toolKindRemote  = "remote"
)

// unknownToolLabel replaces names the model invented so the metric label
// set stays bounded.
const unknownToolLabel = "unknown"

// Dispatcher routes a tool call to a built-in or to the remote provider.
// Failures are rendered as text so the model can react to them.
type Dispatcher struct {
	builtins output.ToolRegistry
	remote   output.RemoteToolProvider
	logger   output.LoggerPort
	metrics  output.MetricsPort
}

// NewDispatcher builds a dispatcher. remote may be nil when no provider
// could be reached at setup; metrics may be nil.
func NewDispatcher(
	builtins output.ToolRegistry,
	remote output.RemoteToolProvider,
	logger output.LoggerPort,
	metrics output.MetricsPort,
) *Dispatcher {
	return &Dispatcher{
		builtins: builtins,
		remote:   remote,
		logger:   logger,
		metrics:  metrics,
	}
}

func (d *Dispatcher) Execute(ctx context.Context, name string, args map[string]any) entity.ToolResult {
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	toolName := entity.ToolName(name)

	var (
		result entity.ToolResult
		kind   string
	)
	if toolName.IsRemote() {
		kind = toolKindRemote
		result = d.executeRemote(ctx, toolName.RemoteName(), args)
	} else {
		kind = toolKindBuiltin
		result = d.executeBuiltin(ctx, toolName, args)
	}

	if result.Content == "" {
		result = entity.ToolResult{Content: emptyResultContent, IsError: true}
	}

	outcome := "success"
	if result.IsError {
		outcome = "error"
	}
	if d.metrics != nil {
		d.metrics.ObserveToolCall(d.metricLabel(toolName), kind, outcome)
	}

	d.logger.Info("Tool dispatched",
		"name", name,
		"kind", kind,
		"outcome", outcome,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return result
}

func (d *Dispatcher) metricLabel(name entity.ToolName) string {
	if name.IsRemote() {
		return name.String()
	}
	if _, ok := d.builtins.Get(name); !ok {
		return unknownToolLabel
	}
	return name.String()
}

func (d *Dispatcher) executeRemote(ctx context.Context, name string, args map[string]any) entity.ToolResult {
	if d.remote == nil {
		return remoteFailure(name, entity.ErrProviderUnavailable)
	}

	d.logger.Debug("Executing remote tool", "name", name, "args", args)

	content, err := d.remote.CallTool(ctx, name, args)
	if err != nil {
		d.logger.Error("Remote tool failed", "name", name, "error", err)
		return remoteFailure(name, err)
	}
	return entity.ToolResult{Content: content}
}

func remoteFailure(name string, cause error) entity.ToolResult {
	return entity.ToolResult{
		Content: fmt.Sprintf("Error executing remote tool %s: %v", name, cause),
		IsError: true,
	}
}

func (d *Dispatcher) executeBuiltin(ctx context.Context, name entity.ToolName, args map[string]any) (result entity.ToolResult) {
	tool, ok := d.builtins.Get(name)
	if !ok {
		d.logger.Warn("Unknown tool called", "name", name)
		return entity.ToolResult{
			Content: fmt.Sprintf("Function %s not implemented", name),
			IsError: true,
		}
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Built-in tool panicked", "name", name, "panic", r)
			result = entity.ToolResult{
				Content: fmt.Sprintf("Error executing function %s: %v", name, r),
				IsError: true,
			}
		}
	}()

	content, err := tool.Execute(ctx, args)
	if err != nil {
		d.logger.Error("Tool execution failed", "name", name, "error", err)
		return entity.ToolResult{Content: "Error: " + err.Error(), IsError: true}
	}
	return entity.ToolResult{Content: content}
}
