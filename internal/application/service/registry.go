package service

import (
	"sort"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

// ToolRegistryImpl holds the built-in tools.
type ToolRegistryImpl struct {
	tools map[entity.ToolName]output.ToolPort
}

func NewToolRegistry() *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools: make(map[entity.ToolName]output.ToolPort),
	}
}

func (r *ToolRegistryImpl) Register(tool output.ToolPort) {
	r.tools[tool.Name()] = tool
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *ToolRegistryImpl) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	tools := r.All()
	result := make([]entity.ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name().String(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}

// MergeDeclarations combines built-in declarations with tools discovered
// from the remote provider. A nil discovered list means the provider was
// unavailable and only built-ins are returned. Discovered names get the
// remote prefix; a name already taken keeps its first declaration.
func MergeDeclarations(builtins []entity.ToolDefinition, discovered []entity.RawRemoteTool) []entity.ToolDefinition {
	result := make([]entity.ToolDefinition, 0, len(builtins)+len(discovered))
	seen := make(map[string]struct{}, cap(result))

	for _, def := range builtins {
		if _, dup := seen[def.Name]; dup {
			continue
		}
		seen[def.Name] = struct{}{}
		result = append(result, def)
	}

	for _, raw := range discovered {
		def := remoteDeclaration(raw)
		if _, dup := seen[def.Name]; dup {
			continue
		}
		seen[def.Name] = struct{}{}
		result = append(result, def)
	}

	return result
}

func remoteDeclaration(raw entity.RawRemoteTool) entity.ToolDefinition {
	description := raw.Description
	if description == "" {
		description = "MCP tool: " + raw.Name
	}

	params := raw.InputSchema
	if params == nil {
		params = map[string]any{"type": "object"}
	}

	return entity.ToolDefinition{
		Name:        entity.RemoteToolName(raw.Name).String(),
		Description: description,
		Parameters:  params,
	}
}
