package huggingface

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-interviewprep-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequestWireFormat(t *testing.T) {
	var captured map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		assert.Equal(t, "Bearer hf-test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"pong"}}]}`))
	}))
	defer server.Close()

	provider := NewHuggingFaceProvider("hf-test-key", server.URL, "test-model")

	out, err := provider.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "ping"},
		{Role: "model", Content: "earlier reply"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", out)

	// The router expects lowercase OpenAI-style fields.
	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 3)

	first, ok := messages[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "be brief", first["content"])
	assert.NotContains(t, first, "Role")
	assert.NotContains(t, first, "Content")

	// The generic "model" role maps to the API's "assistant".
	third, ok := messages[2].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "assistant", third["role"])
}

func TestChatStreamAccumulatesDeltas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"model\":\"served-model\",\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}],\"usage\":{\"prompt_tokens\":7,\"completion_tokens\":2}}\n\n" +
				"data: [DONE]\n\n"))
	}))
	defer server.Close()

	provider := NewHuggingFaceProvider("hf-test-key", server.URL, "test-model")

	var deltas []string
	result, err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, func(delta string) {
		deltas = append(deltas, delta)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hel", "lo"}, deltas)
	assert.Equal(t, "Hello", result.Content)
	assert.Equal(t, "served-model", result.Model)
	assert.Equal(t, 7, result.PromptTokens)
	assert.Equal(t, 2, result.CompletionTokens)
}

func TestChatStreamOptionOverridesAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-own-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	provider := NewHuggingFaceProvider("hf-default-key", server.URL, "test-model")

	_, err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, nil,
		llm.WithAPIKey("user-own-key"))
	require.NoError(t, err)
}
