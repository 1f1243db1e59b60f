package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

func newTestServer(t *testing.T, status int, payload string, body *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"), r.URL.Path)
		if body != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Complete(t *testing.T) {
	var body map[string]any
	srv := newTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Margins expanded."}]},"finishReason":"STOP"}]}`, &body)

	c, err := NewClient(context.Background(), config.LLMConfig{APIKey: "k", BaseURL: srv.URL, Model: "gemini-test"})
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), &completion.Request{
		SystemInstruction: "sys",
		UserInstruction:   "user",
		MaxTokens:         1000,
		Temperature:       0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Margins expanded.", text)

	gc := body["generationConfig"].(map[string]any)
	assert.EqualValues(t, 1000, gc["maxOutputTokens"])
	assert.InDelta(t, 0.7, gc["temperature"], 1e-6)
	assert.NotNil(t, body["systemInstruction"])
}

func TestClient_CompleteNoCandidates(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"candidates":[]}`, nil)

	c, err := NewClient(context.Background(), config.LLMConfig{APIKey: "k", BaseURL: srv.URL, Model: "gemini-test"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), &completion.Request{UserInstruction: "u"})
	var ge *completion.GenerationError
	assert.ErrorAs(t, err, &ge)
}

func TestClient_CompleteHTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized,
		`{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`, nil)

	c, err := NewClient(context.Background(), config.LLMConfig{APIKey: "k", BaseURL: srv.URL, Model: "gemini-test"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), &completion.Request{UserInstruction: "u"})
	var ge *completion.GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Contains(t, err.Error(), "API key not valid")
}
