package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/engine"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

// mockGenerator 模拟报告引擎
type mockGenerator struct {
	opts    engine.RunOptions
	ctxDone bool
	block   chan struct{}
	started chan struct{}
}

func (m *mockGenerator) Run(ctx context.Context, opts engine.RunOptions) (*model.Report, error) {
	m.opts = opts
	if m.started != nil {
		close(m.started)
	}
	if m.block != nil {
		<-m.block
	}
	m.ctxDone = ctx.Err() != nil

	opts.ProgressCallback(1, "Generating "+opts.Categories[0].Topics[0]+" section...")
	opts.ProgressCallback(1, "Report completed!")
	return &model.Report{
		ID:      opts.ReportID,
		Profile: opts.Profile,
		Topics:  opts.Categories[0].Topics,
		Content: "# Comprehensive Financial Analysis\n\n## Executive Summary\nfine",
	}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (p *recordingPublisher) Publish(ev ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func validRequest() *model.GenerateRequest {
	return &model.GenerateRequest{
		Profile: model.CompanyProfile{Name: "Acme Corp", Industry: "Widgets", Financials: "Revenue: $10M"},
		Topics:  []string{"Executive Summary"},
	}
}

func TestReportUseCase_Generate(t *testing.T) {
	gen := &mockGenerator{}
	pub := &recordingPublisher{}
	uc := NewReportUseCase(gen, pub, log.DefaultLogger)
	uc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, err := uc.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, res.ID, gen.opts.ReportID)
	assert.Equal(t, "Comprehensive Analysis", gen.opts.Categories[0].Name)
	assert.Equal(t, "financial_analysis_acme_corp.html", res.FileName)
	assert.Equal(t, "# Comprehensive Financial Analysis\n\n\n---\n\n## Executive Summary\nfine", res.Markdown)
	assert.Contains(t, res.HTML, "Generated on 2024-01-02 03:04:05")

	require.Len(t, pub.events, 2)
	assert.Equal(t, ProgressEvent{ReportID: res.ID, Progress: 1, Status: "Generating Executive Summary section..."}, pub.events[0])
	assert.False(t, uc.Running())
}

func TestReportUseCase_Generate_InvalidInput(t *testing.T) {
	uc := NewReportUseCase(&mockGenerator{}, nil, log.DefaultLogger)

	tests := []struct {
		name string
		req  *model.GenerateRequest
	}{
		{name: "missing industry", req: &model.GenerateRequest{Profile: model.CompanyProfile{Name: "a", Financials: "f"}, Topics: []string{"Executive Summary"}}},
		{name: "no topics", req: &model.GenerateRequest{Profile: model.CompanyProfile{Name: "a", Industry: "i", Financials: "f"}}},
		{name: "unknown topic", req: &model.GenerateRequest{Profile: model.CompanyProfile{Name: "a", Industry: "i", Financials: "f"}, Topics: []string{"Horoscope"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Generate(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.IsBadRequest(err))
			assert.Equal(t, ReasonInvalidInput, errors.Reason(err))
		})
	}
}

func TestReportUseCase_Generate_OneAtATime(t *testing.T) {
	gen := &mockGenerator{block: make(chan struct{}), started: make(chan struct{})}
	uc := NewReportUseCase(gen, nil, log.DefaultLogger)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Generate(context.Background(), validRequest())
		done <- err
	}()
	<-gen.started
	assert.True(t, uc.Running())

	_, err := uc.Generate(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))

	close(gen.block)
	require.NoError(t, <-done)
	assert.False(t, uc.Running())
}

func TestReportUseCase_Generate_IgnoresRequestCancel(t *testing.T) {
	gen := &mockGenerator{block: make(chan struct{}), started: make(chan struct{})}
	uc := NewReportUseCase(gen, nil, log.DefaultLogger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := uc.Generate(ctx, validRequest())
		done <- err
	}()
	<-gen.started
	cancel()
	close(gen.block)

	require.NoError(t, <-done)
	assert.False(t, gen.ctxDone)
}

func TestReportUseCase_Topics(t *testing.T) {
	uc := NewReportUseCase(&mockGenerator{}, nil, log.DefaultLogger)
	cats := uc.Topics()
	require.NotEmpty(t, cats)
	assert.Equal(t, "Overview", cats[0].Name)
}
