// Package claude Anthropic Messages API 补全绑定
package claude

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

const (
	ProviderName = config.ProviderClaude
	DefaultModel = "claude-sonnet-4-20250514"
)

// Client Claude 补全客户端
type Client struct {
	client anthropic.Client
	model  string
}

var _ completion.Client = (*Client)(nil)

// NewClient 创建客户端，关闭 SDK 自带重试，保证每次调用只有一次往返
func NewClient(cfg config.LLMConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Complete 发送一次 Messages 请求，拼接全部 text block
func (c *Client) Complete(ctx context.Context, req *completion.Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserInstruction)),
		},
		Temperature: anthropic.Float(float64(req.Temperature)),
	}
	if req.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemInstruction}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", completion.Wrap(ProviderName, err)
	}
	if resp == nil {
		return "", completion.Wrap(ProviderName, errors.New("empty response from Claude API"))
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
