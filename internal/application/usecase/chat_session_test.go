package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-agent/internal/domain/entity"
	"mcp-agent/internal/infrastructure/logger"
	"mcp-agent/internal/infrastructure/userinteraction"
)

type scriptedUI struct {
	inputs  []string
	answers []string
	errors  []string
	notices []string
}

func (u *scriptedUI) ReadInput(ctx context.Context) (string, error) {
	if len(u.inputs) == 0 {
		return "", io.EOF
	}
	line := u.inputs[0]
	u.inputs = u.inputs[1:]
	return line, nil
}

func (u *scriptedUI) ShowAnswer(ctx context.Context, model, answer string) {
	u.answers = append(u.answers, model+": "+answer)
}

func (u *scriptedUI) ShowNotice(ctx context.Context, message string) {
	u.notices = append(u.notices, message)
}

func (u *scriptedUI) ShowError(ctx context.Context, message string) {
	u.errors = append(u.errors, message)
}

func (u *scriptedUI) ShowToolStart(ctx context.Context, toolName, arguments string) {}

func (u *scriptedUI) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {}

type fakeResolver struct {
	convs    []*entity.Conversation
	messages []string
	errs     map[string]error
}

func (r *fakeResolver) Resolve(ctx context.Context, conv *entity.Conversation, userMessage string) (*entity.TurnResult, error) {
	r.convs = append(r.convs, conv)
	r.messages = append(r.messages, userMessage)
	if err, ok := r.errs[userMessage]; ok {
		return nil, err
	}
	conv.AppendUser(userMessage)
	conv.AppendAssistant("echo " + userMessage)
	return &entity.TurnResult{Answer: "echo " + userMessage, Turns: 1}, nil
}

func newSession(resolver *fakeResolver, ui *scriptedUI) *ChatSessionUseCase {
	s := NewChatSessionUseCase(resolver, ui, logger.NewNopLogger(), "llama3.2", "system")
	s.newID = func() string { return "conv-1" }
	return s
}

func TestRun_ResolvesUntilEOF(t *testing.T) {
	resolver := &fakeResolver{}
	ui := &scriptedUI{inputs: []string{"hello", "", "what is 2+2"}}

	err := newSession(resolver, ui).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "what is 2+2"}, resolver.messages)
	assert.Equal(t, []string{"llama3.2: echo hello", "llama3.2: echo what is 2+2"}, ui.answers)
	assert.Empty(t, ui.errors)
}

func TestRun_SharesOneConversation(t *testing.T) {
	resolver := &fakeResolver{}
	ui := &scriptedUI{inputs: []string{"one", "two"}}

	require.NoError(t, newSession(resolver, ui).Run(context.Background()))

	require.Len(t, resolver.convs, 2)
	assert.Same(t, resolver.convs[0], resolver.convs[1])
	assert.Equal(t, "conv-1", resolver.convs[0].ID())
	assert.Equal(t, 5, resolver.convs[0].Len())

	first := resolver.convs[0].Messages()[0]
	assert.Equal(t, entity.RoleSystem, first.Role)
	assert.Equal(t, "system", first.Content)
}

func TestRun_ExitCommands(t *testing.T) {
	for _, cmd := range []string{"/exit", "/quit", "/salir", "  /EXIT  "} {
		t.Run(cmd, func(t *testing.T) {
			resolver := &fakeResolver{}
			ui := &scriptedUI{inputs: []string{"first", cmd, "never"}}

			require.NoError(t, newSession(resolver, ui).Run(context.Background()))
			assert.Equal(t, []string{"first"}, resolver.messages)
		})
	}
}

func TestRun_FailuresDoNotEndSession(t *testing.T) {
	resolver := &fakeResolver{errs: map[string]error{
		"broken": fmt.Errorf("%w: connection refused", entity.ErrGatewayFailure),
		"loop":   fmt.Errorf("%w (10)", entity.ErrMaxTurnsExceeded),
	}}
	ui := &scriptedUI{inputs: []string{"broken", "loop", "ok"}}

	require.NoError(t, newSession(resolver, ui).Run(context.Background()))

	assert.Equal(t, []string{msgGatewayFailure, msgMaxTurns}, ui.errors)
	assert.Equal(t, []string{"llama3.2: echo ok"}, ui.answers)
}

type failingUI struct{ scriptedUI }

func (u *failingUI) ReadInput(ctx context.Context) (string, error) {
	return "", errors.New("terminal gone")
}

func TestRun_ReadErrorIsReturned(t *testing.T) {
	s := NewChatSessionUseCase(&fakeResolver{}, &failingUI{}, logger.NewNopLogger(), "m", "s")

	err := s.Run(context.Background())
	assert.EqualError(t, err, "terminal gone")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newSession(&fakeResolver{}, &scriptedUI{inputs: []string{"hi"}}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ui := userinteraction.NewConsoleUserInteraction(pr, &bytes.Buffer{})
	s := NewChatSessionUseCase(&fakeResolver{}, ui, logger.NewNopLogger(), "m", "s")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked in ReadInput after cancel")
	}
}
