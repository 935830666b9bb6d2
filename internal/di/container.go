package di

import (
	"context"
	"fmt"
	"io"

	"mcp-agent/internal/adapter/tool"
	"mcp-agent/internal/application/port/input"
	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/application/service"
	"mcp-agent/internal/application/usecase"
	"mcp-agent/internal/domain/entity"
	"mcp-agent/internal/infrastructure/env"
	"mcp-agent/internal/infrastructure/llm/ollama"
	"mcp-agent/internal/infrastructure/logger"
	"mcp-agent/internal/infrastructure/mcp"
	"mcp-agent/internal/infrastructure/metrics"
	"mcp-agent/internal/infrastructure/prompts"
	"mcp-agent/internal/infrastructure/userinteraction"
	"mcp-agent/internal/usecase/executor"
)

type Container struct {
	Logger  output.LoggerPort
	LLM     output.LLMPort
	Remote  *mcp.Session
	Metrics *metrics.Recorder
	UI      output.UserInteractionPort

	Model string
	Tools []entity.ToolDefinition

	Resolver input.TurnResolver
	Session  input.ChatSession
}

type Config struct {
	App     env.Config
	Version string
	In      io.Reader
	Out     io.Writer

	// LLM replaces the Ollama gateway when set.
	LLM output.LLMPort
}

// NewContainer wires the agent. Failing to reach the model endpoint is a
// setup failure; failing to start the tool server only leaves the built-in
// tools.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	app := cfg.App

	log, err := logger.NewLoggerAdapter(logger.Config{
		Dir:     app.Log.Dir,
		Level:   app.Log.Level,
		Session: "chat",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create logger: %w", entity.ErrSetupFailure, err)
	}

	c := &Container{
		Logger:  log,
		Metrics: metrics.NewRecorder(),
		UI:      userinteraction.NewConsoleUserInteraction(cfg.In, cfg.Out),
	}

	c.LLM = cfg.LLM
	if c.LLM == nil {
		llmCfg := ollama.DefaultConfig(app.Ollama.BaseURL)
		if app.Ollama.APIKey != "" {
			llmCfg.APIKey = app.Ollama.APIKey
		}
		if app.Ollama.Timeout > 0 {
			llmCfg.Timeout = app.Ollama.Timeout
		}
		llmCfg.Logger = log.Named("gateway")
		c.LLM = ollama.NewOllamaAdapter(llmCfg)
	}

	if err := c.selectModel(ctx, app.Ollama.Model); err != nil {
		c.Close()
		return nil, err
	}

	var remote output.RemoteToolProvider
	if app.MCPServer.Command != "" {
		session, err := mcp.Dial(ctx, mcp.Config{
			Command:       app.MCPServer.Command,
			Args:          app.MCPServer.Args,
			Env:           app.MCPServer.Env,
			ClientVersion: cfg.Version,
		}, log.Named("mcp"))
		if err != nil {
			log.Error("Failed to start MCP server", "command", app.MCPServer.Command, "error", err)
			c.UI.ShowNotice(ctx, "Tool server unavailable, only built-in tools will be used.")
		} else {
			c.Remote = session
			remote = session
		}
	}

	builtins := service.NewToolRegistry()
	for _, t := range tool.Builtins() {
		builtins.Register(t)
	}

	discovered := service.DiscoverRemoteTools(ctx, remote, log)
	c.Tools = service.MergeDeclarations(builtins.Definitions(), discovered)

	systemPrompt, err := buildSystemPrompt(app.Agent.SystemPrompt, c.Tools)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("%w: failed to render system prompt: %w", entity.ErrSetupFailure, err)
	}

	dispatcher := service.NewDispatcher(builtins, remote, log.Named("dispatcher"), c.Metrics)

	c.Resolver = executor.New(c.LLM, dispatcher, c.Tools, log, executor.Config{
		Model:       c.Model,
		MaxTurns:    app.Agent.MaxTurns,
		Temperature: app.Agent.Temperature,
	},
		executor.WithObserver(c.UI),
		executor.WithMetrics(c.Metrics),
	)

	c.Session = usecase.NewChatSessionUseCase(c.Resolver, c.UI, log, c.Model, systemPrompt)

	log.Info("Container ready", "model", c.Model, "tools", len(c.Tools), "remote", c.Remote != nil)
	return c, nil
}

func (c *Container) selectModel(ctx context.Context, preferred string) error {
	available, err := c.LLM.ListModels(ctx)
	if err != nil {
		c.Logger.Error("Failed to list models", "error", err)
		return fmt.Errorf("%w: cannot reach model endpoint: %w", entity.ErrSetupFailure, err)
	}

	model, fallback, err := service.ResolveModel(available, preferred)
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrSetupFailure, err)
	}

	if fallback {
		c.Logger.Warn("Configured model not found, falling back", "preferred", preferred, "model", model)
		c.UI.ShowNotice(ctx, fmt.Sprintf("Model %s not found, using %s instead.", preferred, model))
	}

	c.Model = model
	return nil
}

func buildSystemPrompt(custom string, tools []entity.ToolDefinition) (string, error) {
	tmpl := custom
	if tmpl == "" {
		tmpl = prompts.DefaultSystemPrompt
	}
	return prompts.GenerateSystemPrompt(tmpl, tools)
}

func (c *Container) Close() {
	if c.Remote != nil {
		if err := c.Remote.Close(); err != nil {
			c.Logger.Warn("Failed to close MCP session", "error", err)
		}
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
