package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mcp-agent/internal/application/port/output"
	"mcp-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertResponseMessage_WithContent(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "Hello, world!",
	}

	result, err := convertResponseMessage(msg)

	require.NoError(t, err)
	assert.Equal(t, entity.PlainText{Text: "Hello, world!"}, result)
}

func TestConvertResponseMessage_WithToolCalls(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role: "assistant",
		ToolCalls: []openai.ToolCall{
			{
				ID:   "call_123",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      "sum_two_numbers",
					Arguments: `{"number_a":2,"number_b":2}`,
				},
			},
			{
				ID:   "call_456",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      "get_current_weather",
					Arguments: `{"city":"Lima"}`,
				},
			},
		},
	}

	result, err := convertResponseMessage(msg)

	require.NoError(t, err)
	call, ok := result.(entity.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "call_123", call.Call.ID)
	assert.Equal(t, "sum_two_numbers", call.Call.Name)
	assert.Equal(t, `{"number_a":2,"number_b":2}`, call.Call.Arguments)
}

func TestConvertResponseMessage_Empty(t *testing.T) {
	_, err := convertResponseMessage(openai.ChatCompletionMessage{Role: "assistant"})

	assert.ErrorIs(t, err, entity.ErrEmptyResponse)
}

func TestConvertMessages_PreservesOrderAndRoles(t *testing.T) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: "system"},
		{Role: entity.RoleUser, Content: "what is 2+2"},
		{Role: entity.RoleAssistant, ToolCalls: []entity.ToolCall{
			{ID: "call_2", Name: "sum_two_numbers", Arguments: `{"number_a":2,"number_b":2}`},
		}},
		{Role: entity.RoleTool, ToolCallID: "call_2", Name: "sum_two_numbers", Content: "4"},
	}

	result := convertMessages(messages)

	require.Len(t, result, 4)
	assert.Equal(t, "system", result[0].Role)
	assert.Equal(t, "user", result[1].Role)
	assert.Equal(t, "assistant", result[2].Role)
	assert.Empty(t, result[2].Content)
	require.Len(t, result[2].ToolCalls, 1)
	assert.Equal(t, "call_2", result[2].ToolCalls[0].ID)
	assert.Equal(t, openai.ToolTypeFunction, result[2].ToolCalls[0].Type)
	assert.Equal(t, "tool", result[3].Role)
	assert.Equal(t, "call_2", result[3].ToolCallID)
	assert.Equal(t, "sum_two_numbers", result[3].Name)
	assert.Equal(t, "4", result[3].Content)
}

func TestConvertTools(t *testing.T) {
	assert.Nil(t, convertTools(nil))

	result := convertTools([]entity.ToolDefinition{
		{Name: "mcp_calculate", Description: "MCP tool: calculate", Parameters: map[string]any{"type": "object"}},
	})

	require.Len(t, result, 1)
	assert.Equal(t, openai.ToolTypeFunction, result[0].Type)
	assert.Equal(t, "mcp_calculate", result[0].Function.Name)
	assert.Equal(t, map[string]any{"type": "object"}, result[0].Function.Parameters)
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *OllamaAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOllamaAdapter(DefaultConfig(srv.URL + "/v1"))
}

func TestOllamaAdapter_ChatToolCall(t *testing.T) {
	var received openai.ChatCompletionRequest
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1,
  "model": "mistral:latest",
  "choices": [{
    "index": 0,
    "finish_reason": "tool_calls",
    "message": {
      "role": "assistant",
      "content": "",
      "tool_calls": [{
        "id": "call_x",
        "type": "function",
        "function": {"name": "sum_two_numbers", "arguments": "{\"number_a\":2,\"number_b\":2}"}
      }]
    }
  }]
}`)
	})

	resp, err := adapter.Chat(context.Background(), output.ChatRequest{
		Model: "mistral:latest",
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: "system"},
			{Role: entity.RoleUser, Content: "what is 2+2"},
		},
		Tools: []entity.ToolDefinition{
			{Name: "sum_two_numbers", Description: "Sum two numbers together", Parameters: map[string]any{"type": "object"}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.FunctionCall{Call: entity.ToolCall{
		ID:        "call_x",
		Name:      "sum_two_numbers",
		Arguments: `{"number_a":2,"number_b":2}`,
	}}, resp)

	assert.Equal(t, "mistral:latest", received.Model)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, "user", received.Messages[1].Role)
	require.Len(t, received.Tools, 1)
	assert.Equal(t, "sum_two_numbers", received.Tools[0].Function.Name)
}

func TestOllamaAdapter_ChatHTTPError(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"model crashed","type":"server_error"}}`)
	})

	_, err := adapter.Chat(context.Background(), output.ChatRequest{Model: "m"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}

func TestOllamaAdapter_ListModels(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"object":"list","data":[{"id":"llama3.2:latest","object":"model"},{"id":"mistral:latest","object":"model"}]}`)
	})

	models, err := adapter.ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:latest", "mistral:latest"}, models)
}
