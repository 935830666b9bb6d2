package prompts

import (
	"strings"
	"testing"

	"mcp-agent/internal/domain/entity"
)

func TestGenerateSystemPrompt(t *testing.T) {
	tools := []entity.ToolDefinition{
		{Name: "sum_two_numbers", Description: "Sum two numbers together"},
		{Name: "mcp_calculate", Description: "MCP tool: calculate"},
		{Name: "get_current_weather", Description: "Get the current weather for a city"},
	}

	result, err := GenerateSystemPrompt(DefaultSystemPrompt, tools)
	if err != nil {
		t.Fatalf("GenerateSystemPrompt failed: %v", err)
	}

	if !strings.Contains(result, "Available tools:") {
		t.Error("Result should list available tools")
	}

	if !strings.Contains(result, "- sum_two_numbers: Sum two numbers together") {
		t.Error("Result should contain sum_two_numbers description")
	}

	weather := strings.Index(result, "get_current_weather")
	calc := strings.Index(result, "mcp_calculate")
	sum := strings.Index(result, "sum_two_numbers")
	if !(weather < calc && calc < sum) {
		t.Errorf("Tools should be sorted by name, got:\n%s", result)
	}

	t.Logf("Generated prompt:\n%s", result)
}

func TestGenerateSystemPromptNoTools(t *testing.T) {
	result, err := GenerateSystemPrompt(DefaultSystemPrompt, nil)
	if err != nil {
		t.Fatalf("GenerateSystemPrompt failed: %v", err)
	}

	if strings.Contains(result, "Available tools:") {
		t.Error("Result should not list tools when there are none")
	}

	if !strings.Contains(result, "consulting the tools") {
		t.Error("Result should contain base template text")
	}
}

func TestGenerateSystemPromptPlainText(t *testing.T) {
	result, err := GenerateSystemPrompt("Be brief.", []entity.ToolDefinition{{Name: "x"}})
	if err != nil {
		t.Fatalf("GenerateSystemPrompt failed: %v", err)
	}

	if result != "Be brief." {
		t.Errorf("Expected template without actions to be unchanged, got %q", result)
	}
}

func TestGenerateSystemPromptInvalidTemplate(t *testing.T) {
	_, err := GenerateSystemPrompt(`Test {{.InvalidField}}`, nil)
	if err == nil {
		t.Error("Expected error for invalid template, got nil")
	}
}
