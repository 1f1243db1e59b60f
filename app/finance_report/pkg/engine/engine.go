package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/completion"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/logger"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/metrics"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

// ErrNoTopics 未选择任何话题
var ErrNoTopics = errors.New("no topics provided")

// Engine 核心处理引擎，按话题顺序逐节生成报告
type Engine struct {
	client  completion.Client
	report  config.ReportConfig
	timeout time.Duration
}

// NewEngine 创建引擎实例，client 在进程内创建一次后只读使用
func NewEngine(cfg *config.Config, client completion.Client) *Engine {
	c := *cfg
	c.ApplyDefaults()
	return &Engine{
		client:  client,
		report:  c.Report,
		timeout: c.LLM.Timeout(),
	}
}

// RunOptions 运行选项
type RunOptions struct {
	ReportID   string // 为空时自动生成
	Title      string // 为空时使用配置中的默认标题
	Profile    model.CompanyProfile
	Categories []model.ReportCategory
	// ProgressCallback 进度回调，progress 取值 [0,1]，仅用于观察
	ProgressCallback func(progress float64, status string)
}

// Topics 按分类顺序展开的话题列表
func (o RunOptions) Topics() []string {
	var topics []string
	for _, c := range o.Categories {
		topics = append(topics, c.Topics...)
	}
	return topics
}

// Run 执行一次报告生成任务。单个章节失败不会中断报告，失败信息内联在正文中
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*model.Report, error) {
	topics := opts.Topics()
	if len(topics) == 0 {
		return nil, ErrNoTopics
	}

	report := &model.Report{
		ID:        opts.ReportID,
		Title:     opts.Title,
		Profile:   opts.Profile,
		Topics:    topics,
		Sections:  model.NewGeneratedSections(),
		CreatedAt: time.Now(),
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.Title == "" {
		report.Title = e.report.Title
	}

	log := logger.WithReport(report.ID)
	log.Infof("开始为公司 [%s] 生成报告，包含 %d 个话题", opts.Profile.Name, len(topics))

	notify := func(progress float64, status string) {
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(progress, status)
		}
	}

	var doc, prior strings.Builder
	writeHeader(&doc, report.Title, opts.Profile)

	for i, topic := range topics {
		notify(float64(i+1)/float64(len(topics)), fmt.Sprintf("Generating %s section...", topic))

		fmt.Fprintf(&doc, "---\n\n### %s\n", topic)
		body := e.generateSection(ctx, log, topic, opts.Profile, prior.String())

		report.Sections.Add(topic, body)
		fmt.Fprintf(&prior, "\n\n%s:\n%s", topic, body)

		doc.WriteString(body)
		doc.WriteString("\n\n")
	}

	notify(1.0, "Generating conclusion...")
	report.Conclusion = e.generateConclusion(ctx, log, opts.Profile, report.Sections)
	notify(1.0, "Report completed!")

	fmt.Fprintf(&doc, "---\n\n## Conclusion\n\n%s", report.Conclusion)
	report.Content = doc.String()

	elapsed := time.Since(report.CreatedAt)
	metrics.ReportsGenerated.Inc()
	metrics.ReportDuration.Observe(elapsed.Seconds())
	log.Infof("报告生成完成，共 %d 个章节，耗时 %s", report.Sections.Len(), elapsed.Round(time.Millisecond))
	return report, nil
}

func writeHeader(sb *strings.Builder, title string, p model.CompanyProfile) {
	fmt.Fprintf(sb, "# %s\n\n", title)
	sb.WriteString("## Company Information\n\n")
	fmt.Fprintf(sb, "**Company:** %s  \n", p.Name)
	fmt.Fprintf(sb, "**Industry:** %s  \n", p.Industry)
	fmt.Fprintf(sb, "**Financial Overview:** %s\n\n", p.Financials)
}

// complete 发起一次补全，附加单次超时，并把 panic 转为错误
func (e *Engine) complete(ctx context.Context, req *completion.Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.client.Complete(ctx, req)
}

func newEntry() *logrus.Entry {
	return logrus.NewEntry(logger.Log)
}
