package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantErr  string
	}{
		{name: "openai", provider: config.ProviderOpenAI, apiKey: "k"},
		{name: "claude", provider: config.ProviderClaude, apiKey: "k"},
		{name: "gemini", provider: config.ProviderGemini, apiKey: "k"},
		{name: "default provider", provider: "", apiKey: "k"},
		{name: "missing key", provider: config.ProviderClaude, wantErr: "ANTHROPIC_API_KEY"},
		{name: "unknown provider", provider: "llama", apiKey: "k", wantErr: "unknown llm provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{LLM: config.LLMConfig{Provider: tt.provider, APIKey: tt.apiKey, Model: "m"}}
			cfg.Concurrency.RPM = 60

			c, err := NewClient(context.Background(), cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}
