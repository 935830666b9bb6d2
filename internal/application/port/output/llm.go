package output

import (
	"context"

	"mcp-agent/internal/domain/entity"
)

type LLMPort interface {
	// Chat sends the transcript and tool declarations to the model. Exactly
	// one of entity.PlainText or entity.FunctionCall is returned on success.
	Chat(ctx context.Context, req ChatRequest) (entity.ModelResponse, error)
	ListModels(ctx context.Context) ([]string, error)
}

type ChatRequest struct {
	Model       string
	Messages    []entity.Message
	Tools       []entity.ToolDefinition
	Temperature float32
}
