package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/metrics"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

// GenerateConclusion 基于各章节摘录生成结论，失败时返回内联错误文本
func (e *Engine) GenerateConclusion(ctx context.Context, profile model.CompanyProfile, sections *model.GeneratedSections) string {
	if sections == nil {
		sections = model.NewGeneratedSections()
	}
	return e.generateConclusion(ctx, newEntry(), profile, sections)
}

func (e *Engine) generateConclusion(ctx context.Context, log *logrus.Entry, profile model.CompanyProfile, sections *model.GeneratedSections) string {
	system, user := conclusionPrompts(profile, sections.Items(), e.report.ExcerptLength)
	log.Infof("开始生成结论，基于 %d 个章节", sections.Len())

	text, err := e.complete(ctx, &completion.Request{
		SystemInstruction: system,
		UserInstruction:   user,
		MaxTokens:         e.report.ConclusionMaxTokens,
		Temperature:       e.report.Temperature,
	})
	if err != nil {
		log.Warnf("结论生成失败: %v", err)
		metrics.SectionsGenerated.WithLabelValues(metrics.KindConclusion, metrics.StatusError).Inc()
		return fmt.Sprintf("Error generating conclusion: %s", err.Error())
	}

	metrics.SectionsGenerated.WithLabelValues(metrics.KindConclusion, metrics.StatusOK).Inc()
	return text
}
