package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"

	DefaultTitle            = "Comprehensive Financial Analysis"
	DefaultModel            = "gpt-4o"
	DefaultSecretsFile      = ".streamlit/secrets.toml"
	defaultTimeoutSeconds   = 120
	defaultSectionMaxTokens = 10000
	defaultConclusionTokens = 1000
	defaultTemperature      = 0.7
	defaultExcerptLength    = 200
	defaultOutputDir        = "output"
	providerEnv             = "FINANCE_REPORT_PROVIDER"
	openAIKeyEnv            = "OPENAI_API_KEY"
	openAIModelEnv          = "OPENAI_MODEL"
	anthropicKeyEnv         = "ANTHROPIC_API_KEY"
	geminiKeyEnv            = "GEMINI_API_KEY"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Report      ReportConfig      `yaml:"report"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	SecretsFile string            `yaml:"secrets_file"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider       string `yaml:"provider"`
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout 单次调用超时
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReportConfig 报告生成参数
type ReportConfig struct {
	Title               string  `yaml:"title"`
	SectionMaxTokens    int     `yaml:"section_max_tokens"`
	ConclusionMaxTokens int     `yaml:"conclusion_max_tokens"`
	Temperature         float32 `yaml:"temperature"`
	ExcerptLength       int     `yaml:"excerpt_length"`
	OutputDir           string  `yaml:"output_dir"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置，RPM 为 0 时不限流
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置，再依次应用默认值、环境变量和 secrets 文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 无配置文件时使用的配置
func Default() *Config {
	cfg := &Config{}
	// secrets 文件损坏时忽略，由调用方校验 APIKey
	_ = cfg.Resolve()
	return cfg
}

// Resolve 依次应用默认值、环境变量和 secrets 文件。
// provider 环境变量最先生效，默认模型随最终 provider 确定
func (c *Config) Resolve() error {
	if v := os.Getenv(providerEnv); v != "" {
		c.LLM.Provider = v
	}
	c.ApplyDefaults()
	c.applyEnvOverrides()
	return c.applySecrets()
}

// ApplyDefaults 为未设置的字段填充默认值
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}
	if c.LLM.Model == "" && c.LLM.Provider == ProviderOpenAI {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Report.Title == "" {
		c.Report.Title = DefaultTitle
	}
	if c.Report.SectionMaxTokens <= 0 {
		c.Report.SectionMaxTokens = defaultSectionMaxTokens
	}
	if c.Report.ConclusionMaxTokens <= 0 {
		c.Report.ConclusionMaxTokens = defaultConclusionTokens
	}
	if c.Report.Temperature <= 0 {
		c.Report.Temperature = defaultTemperature
	}
	if c.Report.ExcerptLength <= 0 {
		c.Report.ExcerptLength = defaultExcerptLength
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = defaultOutputDir
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.SecretsFile == "" {
		c.SecretsFile = DefaultSecretsFile
	}
}

// APIKeyName 当前 provider 对应的密钥名，同时用于环境变量和 secrets 文件
func (c *Config) APIKeyName() string {
	switch c.LLM.Provider {
	case ProviderClaude:
		return anthropicKeyEnv
	case ProviderGemini:
		return geminiKeyEnv
	default:
		return openAIKeyEnv
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(c.APIKeyName()); v != "" {
		c.LLM.APIKey = v
	}
	if c.LLM.Provider == ProviderOpenAI {
		if v := os.Getenv(openAIModelEnv); v != "" {
			c.LLM.Model = v
		}
	}
}

func (c *Config) applySecrets() error {
	if c.LLM.APIKey != "" || c.SecretsFile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.SecretsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read secrets %s: %w", c.SecretsFile, err)
	}

	secrets := map[string]any{}
	if err := toml.Unmarshal(raw, &secrets); err != nil {
		return fmt.Errorf("parse secrets %s: %w", c.SecretsFile, err)
	}
	if v, ok := secrets[c.APIKeyName()].(string); ok {
		c.LLM.APIKey = v
	}
	return nil
}
