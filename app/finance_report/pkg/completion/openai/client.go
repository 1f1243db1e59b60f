// Package openai 基于 eino ChatModel 的 OpenAI 兼容补全绑定
package openai

import (
	"context"
	"errors"
	"fmt"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

// ProviderName 指标与错误中使用的 provider 名
const ProviderName = config.ProviderOpenAI

// Client 使用消息数组形式的 chat completion
type Client struct {
	chatModel model.BaseChatModel
}

var _ completion.Client = (*Client)(nil)

// NewClient 根据配置初始化 LLM
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	chatModel, err := einoopenai.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return New(chatModel), nil
}

// New 包装已构造的 ChatModel
func New(cm model.BaseChatModel) *Client {
	return &Client{chatModel: cm}
}

// Complete 发送 system + user 两条消息，返回原始文本
func (c *Client) Complete(ctx context.Context, req *completion.Request) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(req.SystemInstruction),
		schema.UserMessage(req.UserInstruction),
	}

	resp, err := c.chatModel.Generate(ctx, messages,
		model.WithTemperature(req.Temperature),
		model.WithMaxTokens(req.MaxTokens),
	)
	if err != nil {
		return "", completion.Wrap(ProviderName, err)
	}
	if resp == nil {
		return "", completion.Wrap(ProviderName, errors.New("empty response from chat model"))
	}
	return resp.Content, nil
}
