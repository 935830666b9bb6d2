package ollama

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*OllamaAdapter)(nil)

type OllamaAdapter struct {
	client *openai.Client
	logger output.LoggerPort
}

type Config struct {
	BaseURL string
	// APIKey is ignored by Ollama but required by the OpenAI wire format.
	APIKey  string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		APIKey:  "ollama",
		Timeout: 60 * time.Second,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("HTTP Request failed",
			"url", req.URL.String(),
			"error", err,
			"durationMs", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	t.logger.Debug("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

func NewOllamaAdapter(cfg Config) *OllamaAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	var transport http.RoundTripper = http.DefaultTransport
	if cfg.Logger != nil {
		transport = &loggingTransport{
			base:   transport,
			logger: cfg.Logger,
		}
	}
	config.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return &OllamaAdapter{
		client: openai.NewClientWithConfig(config),
		logger: cfg.Logger,
	}
}

func (a *OllamaAdapter) Chat(ctx context.Context, req output.ChatRequest) (entity.ModelResponse, error) {
	if a.logger != nil {
		a.logger.Debug("Creating chat completion",
			"model", req.Model,
			"messagesCount", len(req.Messages),
			"tools", toolNames(req.Tools),
		)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    convertMessages(req.Messages),
		Tools:       convertTools(req.Tools),
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return convertResponseMessage(resp.Choices[0].Message)
}

// ListModels doubles as the startup connection check.
func (a *OllamaAdapter) ListModels(ctx context.Context) ([]string, error) {
	list, err := a.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models failed: %w", err)
	}

	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		names = append(names, m.ID)
	}
	return names, nil
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
			Name:       msg.Name,
		}

		for _, tc := range msg.ToolCalls {
			oaiMsg.ToolCalls = append(oaiMsg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}

		result = append(result, oaiMsg)
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	result := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

// convertResponseMessage decides the response variant once. Only the first
// tool call of a batch is kept.
func convertResponseMessage(msg openai.ChatCompletionMessage) (entity.ModelResponse, error) {
	if len(msg.ToolCalls) > 0 {
		tc := msg.ToolCalls[0]
		return entity.FunctionCall{Call: entity.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}}, nil
	}

	if msg.Content == "" {
		return nil, entity.ErrEmptyResponse
	}
	return entity.PlainText{Text: msg.Content}, nil
}

func toolNames(tools []entity.ToolDefinition) []string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return names
}
