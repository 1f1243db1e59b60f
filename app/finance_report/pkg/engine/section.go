package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/metrics"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

// GenerateSection 生成单个话题的正文，不含标题。prior 为此前所有章节的拼接，
// 非空时整体附在提示词中要求模型不要重复。失败时返回内联错误文本
func (e *Engine) GenerateSection(ctx context.Context, topic string, profile model.CompanyProfile, prior string) string {
	return e.generateSection(ctx, newEntry(), topic, profile, prior)
}

func (e *Engine) generateSection(ctx context.Context, log *logrus.Entry, topic string, profile model.CompanyProfile, prior string) string {
	system, user := sectionPrompts(topic, profile, prior)
	log.Debugf("生成章节 [%s]，提示词长度 %d，上文长度 %d", topic, len(system)+len(user), len(prior))

	body, err := e.complete(ctx, &completion.Request{
		SystemInstruction: system,
		UserInstruction:   user,
		MaxTokens:         e.report.SectionMaxTokens,
		Temperature:       e.report.Temperature,
	})
	if err != nil {
		log.Warnf("章节生成失败 [%s]: %v", topic, err)
		metrics.SectionsGenerated.WithLabelValues(metrics.KindSection, metrics.StatusError).Inc()
		return fmt.Sprintf("Error generating content for %s: %s", topic, err.Error())
	}

	metrics.SectionsGenerated.WithLabelValues(metrics.KindSection, metrics.StatusOK).Inc()
	log.Infof("章节 [%s] 生成完成，长度 %d", topic, len(body))
	return body
}
