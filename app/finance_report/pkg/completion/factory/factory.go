package factory

import (
	"context"
	"fmt"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion/claude"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion/gemini"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion/openai"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

// NewClient 根据配置创建补全客户端，并套上指标与限流
func NewClient(ctx context.Context, cfg *config.Config) (completion.Client, error) {
	provider := cfg.LLM.Provider
	if provider == "" {
		provider = config.ProviderOpenAI
	}
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("%s api key is missing: set llm.api_key or %s", provider, cfg.APIKeyName())
	}

	var (
		client completion.Client
		err    error
	)
	switch provider {
	case config.ProviderOpenAI:
		client, err = openai.NewClient(ctx, cfg.LLM)
	case config.ProviderClaude:
		client = claude.NewClient(cfg.LLM)
	case config.ProviderGemini:
		client, err = gemini.NewClient(ctx, cfg.LLM)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	client = completion.Instrument(client, provider)
	return completion.WithLimiter(client, completion.NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS)), nil
}
