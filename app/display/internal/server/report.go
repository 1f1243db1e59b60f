package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/finance_report/app/display/internal/conf"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion/factory"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/engine"
	frLogger "github.com/iWorld-y/finance_report/app/finance_report/pkg/logger"
)

// NewReportConfig 将 internal/conf.Report 转换为 pkg/config.Config，并应用默认值、环境变量与 secrets
func NewReportConfig(c *conf.Report) (*config.Config, error) {
	cfg := &config.Config{}
	if c != nil {
		cfg.SecretsFile = c.SecretsFile
		if c.Llm != nil {
			cfg.LLM = config.LLMConfig{
				Provider:       c.Llm.Provider,
				BaseURL:        c.Llm.BaseUrl,
				APIKey:         c.Llm.ApiKey,
				Model:          c.Llm.Model,
				TimeoutSeconds: int(c.Llm.TimeoutSeconds),
			}
		}
		if c.Output != nil {
			cfg.Report = config.ReportConfig{
				Title:               c.Output.Title,
				SectionMaxTokens:    int(c.Output.SectionMaxTokens),
				ConclusionMaxTokens: int(c.Output.ConclusionMaxTokens),
				Temperature:         c.Output.Temperature,
				ExcerptLength:       int(c.Output.ExcerptLength),
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
		}
		if c.Concurrency != nil {
			cfg.Concurrency = config.ConcurrencyConfig{
				QPS: int(c.Concurrency.Qps),
				RPM: int(c.Concurrency.Rpm),
			}
		}
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewReportEngine 初始化报告引擎
func NewReportEngine(c *conf.Report, logger log.Logger) (*engine.Engine, error) {
	helper := log.NewHelper(logger)

	cfg, err := NewReportConfig(c)
	if err != nil {
		helper.Errorf("Failed to load report config: %v", err)
		return nil, err
	}

	// 初始化日志
	if err := frLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init report logger: %v", err)
		_ = frLogger.InitLogger("info", "") // 降级处理
	}

	client, err := factory.NewClient(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init completion client: %v", err)
		return nil, err
	}

	helper.Infof("report engine ready: provider=%s model=%s", cfg.LLM.Provider, cfg.LLM.Model)
	return engine.NewEngine(cfg, client), nil
}
