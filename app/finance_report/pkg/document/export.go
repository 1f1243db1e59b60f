package document

import (
	"time"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

// Export 一份报告的导出结果
type Export struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	FileName string `json:"file_name"`
}

// Build 对报告正文重新分节并渲染 HTML
func Build(report *model.Report, now time.Time) (*Export, error) {
	markdown := NormalizeSections(report.Content, report.Topics)
	page, err := RenderHTML(markdown, report.Profile.Name, now)
	if err != nil {
		return nil, err
	}
	return &Export{
		Markdown: markdown,
		HTML:     page,
		FileName: HTMLFileName(report.Profile.Name),
	}, nil
}
