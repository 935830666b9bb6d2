package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

var _ output.RemoteToolProvider = (*Session)(nil)

type Config struct {
	Command string
	Args    []string
	Env     []string

	ClientName    string
	ClientVersion string
}

// Session is an initialized MCP client session.
type Session struct {
	client     *client.Client
	logger     output.LoggerPort
	serverName string
}

// Dial starts the server subprocess and negotiates capabilities with it.
func Dial(ctx context.Context, cfg Config, logger output.LoggerPort) (*Session, error) {
	if cfg.Command == "" {
		return nil, errors.New("mcp: server command is empty")
	}

	c, err := client.NewStdioMCPClient(cfg.Command, cfg.Env, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("start mcp server %q: %w", cfg.Command, err)
	}

	s, err := NewSession(ctx, c, cfg, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	return s, nil
}

// NewSession initializes an already started client.
func NewSession(ctx context.Context, c *client.Client, cfg Config, logger output.LoggerPort) (*Session, error) {
	name := cfg.ClientName
	if name == "" {
		name = "mcp-agent"
	}
	version := cfg.ClientVersion
	if version == "" {
		version = "dev"
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: name, Version: version}

	res, err := c.Initialize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("initialize mcp session: %w", err)
	}

	logger.Info("MCP session initialized",
		"server", res.ServerInfo.Name,
		"serverVersion", res.ServerInfo.Version,
		"protocol", res.ProtocolVersion,
	)

	return &Session{
		client:     c,
		logger:     logger,
		serverName: res.ServerInfo.Name,
	}, nil
}

func (s *Session) ServerName() string {
	return s.serverName
}

func (s *Session) ListTools(ctx context.Context) ([]entity.RawRemoteTool, error) {
	res, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	tools := make([]entity.RawRemoteTool, 0, len(res.Tools))
	for _, t := range res.Tools {
		schema, err := inputSchema(t)
		if err != nil {
			s.logger.Warn("Ignoring unreadable tool schema", "tool", t.Name, "error", err)
		}
		tools = append(tools, entity.RawRemoteTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return tools, nil
}

// CallTool invokes a tool and renders its result as text. A result flagged
// as an error by the server is returned as an error.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call tool %s: %w", name, err)
	}

	text := renderContents(res.Content)
	if res.IsError {
		if text == "" {
			text = "tool reported an error"
		}
		return "", errors.New(text)
	}
	return text, nil
}

func (s *Session) ListPrompts(ctx context.Context) ([]mcp.Prompt, error) {
	res, err := s.client.ListPrompts(ctx, mcp.ListPromptsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return res.Prompts, nil
}

func (s *Session) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	req := mcp.GetPromptRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.client.GetPrompt(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get prompt %s: %w", name, err)
	}
	return res, nil
}

func (s *Session) ListResources(ctx context.Context) ([]mcp.Resource, error) {
	res, err := s.client.ListResources(ctx, mcp.ListResourcesRequest{})
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return res.Resources, nil
}

func (s *Session) ListResourceTemplates(ctx context.Context) ([]mcp.ResourceTemplate, error) {
	res, err := s.client.ListResourceTemplates(ctx, mcp.ListResourceTemplatesRequest{})
	if err != nil {
		return nil, fmt.Errorf("list resource templates: %w", err)
	}
	return res.ResourceTemplates, nil
}

// ReadResource returns the resource contents rendered as text.
func (s *Session) ReadResource(ctx context.Context, uri string) (string, error) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri

	res, err := s.client.ReadResource(ctx, req)
	if err != nil {
		return "", fmt.Errorf("read resource %s: %w", uri, err)
	}

	parts := make([]string, 0, len(res.Contents))
	for _, c := range res.Contents {
		if text, ok := c.(mcp.TextResourceContents); ok {
			parts = append(parts, text.Text)
			continue
		}
		parts = append(parts, marshalFallback(c))
	}
	return strings.Join(parts, "\n"), nil
}

func (s *Session) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// inputSchema returns nil when the server sent no schema.
func inputSchema(t mcp.Tool) (map[string]any, error) {
	var raw []byte
	switch {
	case len(t.RawInputSchema) > 0:
		raw = t.RawInputSchema
	case t.InputSchema.Type != "":
		b, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, err
		}
		raw = b
	default:
		return nil, nil
	}

	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// RenderPrompt renders a prompt result as one "[role] text" line per message,
// preceded by its description when present.
func RenderPrompt(res *mcp.GetPromptResult) string {
	lines := make([]string, 0, len(res.Messages)+1)
	if res.Description != "" {
		lines = append(lines, res.Description)
	}
	for _, msg := range res.Messages {
		lines = append(lines, fmt.Sprintf("[%s] %s", msg.Role, renderContents([]mcp.Content{msg.Content})))
	}
	return strings.Join(lines, "\n")
}

func renderContents(contents []mcp.Content) string {
	parts := make([]string, 0, len(contents))
	for _, c := range contents {
		if text, ok := mcp.AsTextContent(c); ok {
			parts = append(parts, text.Text)
			continue
		}
		parts = append(parts, marshalFallback(c))
	}
	return strings.Join(parts, "\n")
}

func marshalFallback(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
