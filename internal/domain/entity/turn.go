package entity

type TurnOutcome string

const (
	TurnOutcomeAnswered       TurnOutcome = "answered"
	TurnOutcomeGatewayFailure TurnOutcome = "gateway_failure"
	TurnOutcomeMaxTurns       TurnOutcome = "max_turns"
)

func (o TurnOutcome) String() string {
	return string(o)
}

// TurnResult describes how one user message was resolved.
type TurnResult struct {
	Answer    string
	Turns     int
	ToolCalls int
}
