package entity

import "errors"

var (
	// ErrGatewayFailure marks a chat gateway call that failed or returned
	// nothing usable. It ends the current turn only.
	ErrGatewayFailure = errors.New("chat gateway failure")

	// ErrEmptyResponse is returned by gateways when the model produced
	// neither text nor a tool call.
	ErrEmptyResponse = errors.New("model returned no content")

	ErrMaxTurnsExceeded = errors.New("max turns exceeded")

	ErrNoModelsAvailable = errors.New("no models available")

	ErrProviderUnavailable = errors.New("remote tool provider unavailable")
)

// ErrSetupFailure aborts startup before any conversation begins.
var ErrSetupFailure = errors.New("setup failure")
