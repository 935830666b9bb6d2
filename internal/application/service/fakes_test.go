package service

import (
	"context"
	"errors"
	"time"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"
)

var errRemote = errors.New("connection closed")

type remoteCall struct {
	name string
	args map[string]any
}

type fakeRemote struct {
	tools   []entity.RawRemoteTool
	listErr error
	result  string
	callErr error

	listCalls int
	calls     []remoteCall
}

func (f *fakeRemote) ListTools(ctx context.Context) ([]entity.RawRemoteTool, error) {
	f.listCalls++
	return f.tools, f.listErr
}

func (f *fakeRemote) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	f.calls = append(f.calls, remoteCall{name: name, args: args})
	return f.result, f.callErr
}

type recordingMetrics struct {
	toolCalls []string
}

func (m *recordingMetrics) ObserveTurn(outcome string) {}

func (m *recordingMetrics) ObserveToolCall(tool, kind, outcome string) {
	m.toolCalls = append(m.toolCalls, tool+"|"+kind+"|"+outcome)
}

func (m *recordingMetrics) ObserveGatewayLatency(d time.Duration) {}

type stubTool struct {
	name   entity.ToolName
	result string
	err    error
	panics bool

	executed int
}

func (s *stubTool) Name() entity.ToolName      { return s.name }
func (s *stubTool) Description() string        { return "stub " + s.name.String() }
func (s *stubTool) Parameters() map[string]any { return map[string]any{"type": "object"} }

func (s *stubTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	s.executed++
	if s.panics {
		panic("boom")
	}
	return s.result, s.err
}

func registryWith(tools ...output.ToolPort) *ToolRegistryImpl {
	r := NewToolRegistry()
	for _, t := range tools {
		r.Register(t)
	}
	return r
}
