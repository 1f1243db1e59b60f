// Package gemini Google GenAI 补全绑定
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

const (
	ProviderName = config.ProviderGemini
	DefaultModel = "gemini-2.5-flash"
)

// Client Gemini 补全客户端
type Client struct {
	client *genai.Client
	model  string
}

var _ completion.Client = (*Client)(nil)

// NewClient 创建 Gemini API 客户端
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: client, model: model}, nil
}

// Complete 发送一次 generateContent 请求
func (c *Client) Complete(ctx context.Context, req *completion.Request) (string, error) {
	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.SystemInstruction != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.UserInstruction), gc)
	if err != nil {
		return "", completion.Wrap(ProviderName, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", completion.Wrap(ProviderName, errors.New("empty response from Gemini API"))
	}
	return resp.Text(), nil
}
