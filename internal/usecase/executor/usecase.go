package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mcp-agent/internal/application/port/input"
	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"
)

var _ input.TurnResolver = (*UseCase)(nil)

const defaultMaxTurns = 10

type Config struct {
	Model       string
	MaxTurns    int
	Temperature float32
}

type Option func(*UseCase)

// WithObserver reports tool activity to the user as it happens.
func WithObserver(ui output.UserInteractionPort) Option {
	return func(uc *UseCase) { uc.observer = ui }
}

func WithMetrics(m output.MetricsPort) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// UseCase is the tool-call loop. It keeps asking the model until it answers
// in plain text, dispatching at most one tool call per response.
type UseCase struct {
	llm        output.LLMPort
	dispatcher output.ToolDispatcher
	tools      []entity.ToolDefinition
	logger     output.LoggerPort
	cfg        Config

	observer output.UserInteractionPort
	metrics  output.MetricsPort
}

// New builds the loop around a fixed tool snapshot. The snapshot is not
// re-read between turns.
func New(
	llm output.LLMPort,
	dispatcher output.ToolDispatcher,
	tools []entity.ToolDefinition,
	logger output.LoggerPort,
	cfg Config,
	opts ...Option,
) *UseCase {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = defaultMaxTurns
	}

	uc := &UseCase{
		llm:        llm,
		dispatcher: dispatcher,
		tools:      tools,
		logger:     logger,
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) Resolve(ctx context.Context, conv *entity.Conversation, userMessage string) (*entity.TurnResult, error) {
	log := uc.logger.WithField("conversation", conv.ID())
	conv.AppendUser(userMessage)

	result := &entity.TurnResult{}

	for turn := 1; turn <= uc.cfg.MaxTurns; turn++ {
		result.Turns = turn
		log.Debug("Starting turn", "turn", turn, "messages", conv.Len())

		resp, err := uc.chat(ctx, conv)
		if err != nil {
			log.Error("Chat gateway failed", "turn", turn, "error", err)
			uc.observeTurn(entity.TurnOutcomeGatewayFailure)
			return nil, fmt.Errorf("%w: %w", entity.ErrGatewayFailure, err)
		}

		switch r := resp.(type) {
		case entity.PlainText:
			conv.AppendAssistant(r.Text)
			result.Answer = r.Text
			log.Info("Turn answered", "turns", turn, "toolCalls", result.ToolCalls)
			uc.observeTurn(entity.TurnOutcomeAnswered)
			return result, nil

		case entity.FunctionCall:
			uc.runToolCall(ctx, log, conv, r.Call)
			result.ToolCalls++

		default:
			uc.observeTurn(entity.TurnOutcomeGatewayFailure)
			return nil, fmt.Errorf("%w: unexpected response %T", entity.ErrGatewayFailure, resp)
		}
	}

	log.Warn("Turn limit reached", "maxTurns", uc.cfg.MaxTurns)
	uc.observeTurn(entity.TurnOutcomeMaxTurns)
	return nil, fmt.Errorf("%w (%d)", entity.ErrMaxTurnsExceeded, uc.cfg.MaxTurns)
}

func (uc *UseCase) chat(ctx context.Context, conv *entity.Conversation) (entity.ModelResponse, error) {
	start := time.Now()
	resp, err := uc.llm.Chat(ctx, output.ChatRequest{
		Model:       uc.cfg.Model,
		Messages:    conv.Messages(),
		Tools:       uc.tools,
		Temperature: uc.cfg.Temperature,
	})
	if uc.metrics != nil {
		uc.metrics.ObserveGatewayLatency(time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("nil response")
	}
	return resp, nil
}

func (uc *UseCase) runToolCall(ctx context.Context, log output.LoggerPort, conv *entity.Conversation, call entity.ToolCall) {
	args, ok := call.ParseArguments()
	if !ok {
		log.Warn("Malformed tool arguments, using empty object", "name", call.Name, "args", call.Arguments)
	}

	callID := conv.NextCallID()
	conv.AppendToolCall(entity.ToolCall{
		ID:        callID,
		Name:      call.Name,
		Arguments: call.Arguments,
	})

	if uc.observer != nil {
		uc.observer.ShowToolStart(ctx, call.Name, call.Arguments)
	}

	res := uc.dispatcher.Execute(ctx, call.Name, args)

	if uc.observer != nil {
		uc.observer.ShowToolResult(ctx, call.Name, res.Content, res.IsError)
	}

	conv.AppendToolResult(callID, call.Name, res.Content)
	log.Debug("Tool result appended", "id", callID, "name", call.Name, "isError", res.IsError)
}

func (uc *UseCase) observeTurn(outcome entity.TurnOutcome) {
	if uc.metrics != nil {
		uc.metrics.ObserveTurn(outcome.String())
	}
}
