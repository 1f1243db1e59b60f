package model

import "time"

// CompanyProfile 公司基础信息，一次报告生成期间不可变
type CompanyProfile struct {
	Name       string `json:"name" validate:"required"`
	Industry   string `json:"industry" validate:"required"`
	Financials string `json:"financials" validate:"required"`
}

// ReportCategory 报告分类及其有序话题列表
type ReportCategory struct {
	Name   string
	Topics []string
}

// SectionResult 单个话题的生成结果
type SectionResult struct {
	Topic string
	Body  string
}

// GeneratedSections 按话题首次出现顺序保存的章节结果，既可按话题查找也是有序记录。
// 重复话题覆盖原有内容并保留首次位置
type GeneratedSections struct {
	items []SectionResult
	index map[string]int
}

// NewGeneratedSections 创建空的章节集合
func NewGeneratedSections() *GeneratedSections {
	return &GeneratedSections{index: make(map[string]int)}
}

// Add 追加一个章节
func (g *GeneratedSections) Add(topic, body string) {
	if i, ok := g.index[topic]; ok {
		g.items[i].Body = body
		return
	}
	g.items = append(g.items, SectionResult{Topic: topic, Body: body})
	g.index[topic] = len(g.items) - 1
}

// Get 按话题查找章节内容
func (g *GeneratedSections) Get(topic string) (string, bool) {
	i, ok := g.index[topic]
	if !ok {
		return "", false
	}
	return g.items[i].Body, true
}

// Len 已生成章节数
func (g *GeneratedSections) Len() int {
	return len(g.items)
}

// Items 返回按生成顺序排列的章节副本
func (g *GeneratedSections) Items() []SectionResult {
	out := make([]SectionResult, len(g.items))
	copy(out, g.items)
	return out
}

// Report 一次生成的完整报告
type Report struct {
	ID         string
	Title      string
	Profile    CompanyProfile
	Topics     []string
	Sections   *GeneratedSections
	Conclusion string
	Content    string // 拼装后的 Markdown 全文
	CreatedAt  time.Time
}

// GenerateRequest 调用方提交的报告请求
type GenerateRequest struct {
	Title   string         `json:"title"`
	Profile CompanyProfile `json:"company"`
	Topics  []string       `json:"topics" validate:"min=1,dive,required"`
}
