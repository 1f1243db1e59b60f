package document

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/catalog"
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/config"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

var pageTpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            font-family: Arial, sans-serif;
            line-height: 1.5;
            color: #333;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            background-color: #fff;
        }
        h1, h2, h3 { color: #333; }
        p, ul, ol { margin-bottom: 10px; }
        ul, ol { padding-left: 20px; }
        li { margin-bottom: 5px; }
        table { border-collapse: collapse; width: 100%; margin: 15px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f5f5f5; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    {{.Body}}
    <footer>
        <p><small>Generated on {{.GeneratedAt}}</small></p>
    </footer>
</body>
</html>
`))

// PageTitle 导出页面标题
func PageTitle(company string) string {
	if company == "" {
		return "Financial Analysis"
	}
	return "Financial Analysis - " + company
}

// RenderHTML 把报告 Markdown 渲染为带最简样式的独立页面。
// 报告自带的总标题会被去掉，页面标题改用公司名
func RenderHTML(markdown, company string, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(stripTitleLines(markdown)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	body, err := stripTitleHeadings(buf.String())
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = pageTpl.Execute(&out, struct {
		Title       string
		Body        template.HTML
		GeneratedAt string
	}{
		Title:       PageTitle(company),
		Body:        template.HTML(body),
		GeneratedAt: now.Format(time.DateTime),
	})
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out.String(), nil
}

// HTMLFileName 导出文件名：公司名空格替换为下划线并转小写
func HTMLFileName(company string) string {
	return "financial_analysis_" + strings.ToLower(strings.ReplaceAll(company, " ", "_")) + ".html"
}

func stripTitleLines(markdown string) string {
	lines := strings.Split(markdown, "\n")
	kept := lines[:0]
	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case "# " + config.DefaultTitle, "## " + config.DefaultTitle:
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func stripTitleHeadings(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		switch strings.TrimSpace(s.Text()) {
		case config.DefaultTitle, catalog.ComprehensiveCategory:
			s.Remove()
		}
	})

	return doc.Find("body").Html()
}
