package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/catalog"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion/factory"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/document"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/engine"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/logger"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

type generateOptions struct {
	configPath string
	title      string
	company    string
	industry   string
	financials string
	example    bool
	topics     []string
	allTopics  bool
	outDir     string
}

func newGenerateCommand() *cobra.Command {
	o := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "generate a report for one company",
		Example: `  # Two sections for a named company
  finance_report generate --company "Acme" --industry "Widgets" --financials "Revenue: $10M" \
    --topic "Executive Summary" --topic "Risk Assessment & Mitigation Strategies"

  # Every topic for a random example company
  finance_report generate --example --all-topics --out reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(o.configPath)
			if err != nil {
				return err
			}
			if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
				return fmt.Errorf("初始化日志失败: %w", err)
			}

			client, err := factory.NewClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			path, err := runGenerate(cmd.Context(), cfg, client, o, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "config file path, defaults and env vars are used when empty")
	f.StringVar(&o.title, "title", "", "report title")
	f.StringVar(&o.company, "company", "", "company name")
	f.StringVar(&o.industry, "industry", "", "industry")
	f.StringVar(&o.financials, "financials", "", "free-text financial overview")
	f.BoolVar(&o.example, "example", false, "use a random example company")
	f.StringArrayVar(&o.topics, "topic", nil, "report topic, repeat for several; order is generation order")
	f.BoolVar(&o.allTopics, "all-topics", false, "select every topic in catalog order")
	f.StringVar(&o.outDir, "out", "", "output directory, overrides report.output_dir")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	return cfg, nil
}

// runGenerate 校验输入、生成报告并写出 HTML 与 Markdown，返回 HTML 路径
func runGenerate(ctx context.Context, cfg *config.Config, client completion.Client, o *generateOptions, now time.Time) (string, error) {
	req := &model.GenerateRequest{
		Title:   o.title,
		Profile: model.CompanyProfile{Name: o.company, Industry: o.industry, Financials: o.financials},
		Topics:  o.topics,
	}
	if o.example {
		req.Profile = catalog.ExampleProfile(nil)
	}
	if o.allTopics {
		req.Topics = catalog.Topics()
	}
	if err := model.ValidateRequest(req); err != nil {
		return "", err
	}
	if err := catalog.CheckTopics(req.Topics); err != nil {
		return "", err
	}

	eng := engine.NewEngine(cfg, client)
	report, err := eng.Run(ctx, engine.RunOptions{
		Title:      req.Title,
		Profile:    req.Profile,
		Categories: catalog.Comprehensive(req.Topics),
		ProgressCallback: func(progress float64, status string) {
			logger.Log.Infof("[%3.0f%%] %s", progress*100, status)
		},
	})
	if err != nil {
		return "", err
	}

	exp, err := document.Build(report, now)
	if err != nil {
		return "", err
	}

	dir := o.outDir
	if dir == "" {
		dir = cfg.Report.OutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	htmlPath := filepath.Join(dir, exp.FileName)
	if err := os.WriteFile(htmlPath, []byte(exp.HTML), 0644); err != nil {
		return "", fmt.Errorf("写入 HTML 失败: %w", err)
	}
	mdPath := strings.TrimSuffix(htmlPath, ".html") + ".md"
	if err := os.WriteFile(mdPath, []byte(exp.Markdown), 0644); err != nil {
		return "", fmt.Errorf("写入 Markdown 失败: %w", err)
	}

	logger.WithReport(report.ID).Infof("报告已保存到: %s", htmlPath)
	return htmlPath, nil
}
