package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CompletionRequests 补全调用次数
	CompletionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finance_report_completion_requests_total",
			Help: "Total number of completion requests sent to the text-generation service",
		},
		[]string{"provider", "status"},
	)

	// CompletionDuration 补全调用耗时
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finance_report_completion_duration_seconds",
			Help:    "Completion request duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider"},
	)

	// PromptChars 发送的提示词字符数，随章节数增长
	PromptChars = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finance_report_prompt_chars",
			Help:    "Characters of system plus user instruction per completion request",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
		},
	)

	// SectionsGenerated 章节生成结果
	SectionsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finance_report_sections_total",
			Help: "Total number of generated report parts by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	// ReportsGenerated 完成的报告数
	ReportsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finance_report_reports_total",
			Help: "Total number of assembled reports",
		},
	)

	// ReportDuration 整份报告耗时
	ReportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "finance_report_report_duration_seconds",
			Help:    "End-to-end report generation duration in seconds",
			Buckets: []float64{10, 30, 60, 120, 300, 600, 1200},
		},
	)
)

// 章节类型与结果标签
const (
	KindSection    = "section"
	KindConclusion = "conclusion"
	StatusOK       = "ok"
	StatusError    = "error"
)
