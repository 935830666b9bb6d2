package output

import "context"

type UserInteractionPort interface {
	// ReadInput returns io.EOF once the input is closed.
	ReadInput(ctx context.Context) (string, error)

	ShowAnswer(ctx context.Context, model, answer string)
	ShowNotice(ctx context.Context, message string)
	ShowError(ctx context.Context, message string)
	ShowToolStart(ctx context.Context, toolName, arguments string)
	ShowToolResult(ctx context.Context, toolName, result string, isError bool)
}
