package entity

import "strings"

type ToolName string

const (
	ToolGetCurrentWeather ToolName = "get_current_weather"
	ToolSumTwoNumbers     ToolName = "sum_two_numbers"
)

// RemoteToolPrefix marks declarations discovered from the remote provider.
// The dispatcher routes on it, so it must survive the merge untouched.
const RemoteToolPrefix = "mcp_"

func (t ToolName) String() string {
	return string(t)
}

// IsRemote reports whether the name addresses a remote tool.
func (t ToolName) IsRemote() bool {
	return strings.HasPrefix(string(t), RemoteToolPrefix)
}

// RemoteName strips exactly one RemoteToolPrefix occurrence.
func (t ToolName) RemoteName() string {
	return strings.TrimPrefix(string(t), RemoteToolPrefix)
}

// RemoteToolName builds the declaration name for a discovered tool.
func RemoteToolName(name string) ToolName {
	return ToolName(RemoteToolPrefix + name)
}

type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// RawRemoteTool is a tool as reported by the remote provider. Empty
// Description and nil InputSchema mean the provider did not send them.
type RawRemoteTool struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// ToolResult is the textual outcome of a dispatch. Content is what the model
// sees in both cases.
type ToolResult struct {
	Content string
	IsError bool
}
