// Package completion 定义与文本生成服务的单次请求/响应交互
package completion

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/metrics"
)

// Request 一次补全请求
type Request struct {
	SystemInstruction string
	UserInstruction   string
	MaxTokens         int
	Temperature       float32
}

// Client 补全客户端。实现方只做一次网络往返，不重试，不裁剪返回文本
type Client interface {
	Complete(ctx context.Context, req *Request) (string, error)
}

// ClientFunc 函数适配器
type ClientFunc func(ctx context.Context, req *Request) (string, error)

// Complete 实现 Client
func (f ClientFunc) Complete(ctx context.Context, req *Request) (string, error) {
	return f(ctx, req)
}

// GenerationError 单次补全失败（鉴权、限流、网络、响应异常），Error 保留上游原始信息
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return "generation failed"
	}
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Wrap 把任意错误包装为 GenerationError，已是 GenerationError 的原样返回
func Wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return err
	}
	return &GenerationError{Provider: provider, Err: err}
}

// WithLimiter 在每次调用前等待限流令牌，limiter 为 nil 时原样返回
func WithLimiter(c Client, limiter *rate.Limiter) Client {
	if limiter == nil {
		return c
	}
	return ClientFunc(func(ctx context.Context, req *Request) (string, error) {
		if err := limiter.Wait(ctx); err != nil {
			return "", &GenerationError{Provider: "limiter", Err: err}
		}
		return c.Complete(ctx, req)
	})
}

// NewLimiter 按 RPM/QPS 构造限流器，RPM 为 0 表示不限流
func NewLimiter(rpm, qps int) *rate.Limiter {
	if rpm <= 0 {
		return nil
	}
	if qps <= 0 {
		qps = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)
}

// Instrument 记录调用次数、耗时和提示词长度
func Instrument(c Client, provider string) Client {
	return ClientFunc(func(ctx context.Context, req *Request) (string, error) {
		metrics.PromptChars.Observe(float64(len(req.SystemInstruction) + len(req.UserInstruction)))

		start := time.Now()
		text, err := c.Complete(ctx, req)
		metrics.CompletionDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

		status := metrics.StatusOK
		if err != nil {
			status = metrics.StatusError
		}
		metrics.CompletionRequests.WithLabelValues(provider, status).Inc()
		return text, err
	})
}
