package entity

// ModelResponse is the outcome of one chat gateway call: PlainText or
// FunctionCall, nothing else.
type ModelResponse interface {
	isModelResponse()
}

type PlainText struct {
	Text string
}

type FunctionCall struct {
	Call ToolCall
}

func (PlainText) isModelResponse()    {}
func (FunctionCall) isModelResponse() {}
