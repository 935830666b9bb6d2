package tool

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"

	"github.com/mitchellh/mapstructure"
)

var (
	_ output.ToolPort = (*WeatherTool)(nil)
	_ output.ToolPort = (*SumTool)(nil)
)

var (
	errCityMissing = errors.New("city not specified")
	errNotNumbers  = errors.New("arguments must be numbers")
)

// Builtins returns every built-in tool.
func Builtins() []output.ToolPort {
	return []output.ToolPort{
		NewWeatherTool(),
		NewSumTool(),
	}
}

// decodeArgs decodes loosely typed model arguments, so "2" decodes into a
// float64 the same way 2 does.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

type WeatherTool struct{}

func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

func (t *WeatherTool) Name() entity.ToolName { return entity.ToolGetCurrentWeather }
func (t *WeatherTool) Description() string   { return "Get the current weather for a city" }
func (t *WeatherTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{
				"type":        "string",
				"description": "The name of the city",
			},
		},
		"required": []string{"city"},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	var input struct {
		City string `mapstructure:"city"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return "", err
	}
	if input.City == "" {
		return "", errCityMissing
	}
	return fmt.Sprintf("The weather in %s is sunny with 25°C", input.City), nil
}

type SumTool struct{}

func NewSumTool() *SumTool {
	return &SumTool{}
}

func (t *SumTool) Name() entity.ToolName { return entity.ToolSumTwoNumbers }
func (t *SumTool) Description() string   { return "Sum two numbers together" }
func (t *SumTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"number_a": map[string]any{
				"type":        "number",
				"description": "First number to add",
			},
			"number_b": map[string]any{
				"type":        "number",
				"description": "Second number to add",
			},
		},
		"required": []string{"number_a", "number_b"},
	}
}

// Execute treats missing operands as zero.
func (t *SumTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	var input struct {
		NumberA float64 `mapstructure:"number_a"`
		NumberB float64 `mapstructure:"number_b"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return "", errNotNumbers
	}
	return strconv.FormatFloat(input.NumberA+input.NumberB, 'f', -1, 64), nil
}
