package input

import (
	"context"

	"mcp-agent/internal/domain/entity"
)

// TurnResolver turns one user message into a final answer, running any tool
// calls the model asks for on the way.
type TurnResolver interface {
	Resolve(ctx context.Context, conv *entity.Conversation, userMessage string) (*entity.TurnResult, error)
}
