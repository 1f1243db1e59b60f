package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

func TestClient_Complete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "Revenue grew "}, {"type": "text", "text": "35% YoY.\n"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 12, "output_tokens": 6}
		}`))
	}))
	defer srv.Close()

	c := NewClient(config.LLMConfig{APIKey: "test-key", BaseURL: srv.URL})
	text, err := c.Complete(context.Background(), &completion.Request{
		SystemInstruction: "You are a senior financial analyst.",
		UserInstruction:   "Generate the section.",
		MaxTokens:         1000,
		Temperature:       0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Revenue grew 35% YoY.\n", text)

	assert.Equal(t, DefaultModel, body["model"])
	assert.EqualValues(t, 1000, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-6)
	system := body["system"].([]any)
	require.Len(t, system, 1)
	assert.Equal(t, "You are a senior financial analyst.", system[0].(map[string]any)["text"])
}

func TestClient_CompleteErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	c := NewClient(config.LLMConfig{APIKey: "k", BaseURL: srv.URL, Model: "claude-test"})
	_, err := c.Complete(context.Background(), &completion.Request{UserInstruction: "u", MaxTokens: 10})
	require.Error(t, err)

	var ge *completion.GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ProviderName, ge.Provider)
	assert.Contains(t, err.Error(), "429")
	assert.EqualValues(t, 1, calls.Load())
}
