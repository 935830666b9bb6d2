package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	"mcp-agent/internal/application/port/input"
	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"
)

var _ input.ChatSession = (*ChatSessionUseCase)(nil)

const (
	msgGatewayFailure = "could not get a response from the model"
	msgMaxTurns       = "the model kept calling tools without answering, try rephrasing"
)

var exitCommands = map[string]struct{}{
	"/exit":  {},
	"/quit":  {},
	"/salir": {},
}

// ChatSessionUseCase reads user messages one at a time and resolves each
// before accepting the next. All messages share one conversation.
type ChatSessionUseCase struct {
	resolver     input.TurnResolver
	ui           output.UserInteractionPort
	logger       output.LoggerPort
	model        string
	systemPrompt string
	newID        func() string
}

func NewChatSessionUseCase(
	resolver input.TurnResolver,
	ui output.UserInteractionPort,
	logger output.LoggerPort,
	model string,
	systemPrompt string,
) *ChatSessionUseCase {
	return &ChatSessionUseCase{
		resolver:     resolver,
		ui:           ui,
		logger:       logger,
		model:        model,
		systemPrompt: systemPrompt,
		newID:        uuid.NewString,
	}
}

func (uc *ChatSessionUseCase) Run(ctx context.Context) error {
	conv := entity.NewConversation(uc.newID(), uc.systemPrompt)
	log := uc.logger.WithField("conversation", conv.ID())
	log.Info("Chat session started", "model", uc.model)

	uc.ui.ShowNotice(ctx, "Type /exit, /quit or /salir to leave.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := uc.ui.ReadInput(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("Chat session ended", "reason", "eof", "messages", conv.Len())
				return nil
			}
			return err
		}

		if line == "" {
			continue
		}
		if isExitCommand(line) {
			log.Info("Chat session ended", "reason", "exit", "messages", conv.Len())
			return nil
		}

		result, err := uc.resolver.Resolve(ctx, conv, line)
		if err != nil {
			switch {
			case errors.Is(err, entity.ErrMaxTurnsExceeded):
				uc.ui.ShowError(ctx, msgMaxTurns)
			default:
				uc.ui.ShowError(ctx, msgGatewayFailure)
			}
			log.Warn("Turn failed", "error", err)
			continue
		}

		uc.ui.ShowAnswer(ctx, uc.model, result.Answer)
	}
}

func isExitCommand(line string) bool {
	_, ok := exitCommands[strings.ToLower(strings.TrimSpace(line))]
	return ok
}
