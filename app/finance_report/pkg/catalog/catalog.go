package catalog

import (
	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

// ComprehensiveCategory 界面提交时把所有选中话题归入的单一分类
const ComprehensiveCategory = "Comprehensive Analysis"

// Topic 报告话题
type Topic struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Category 话题分组
type Category struct {
	Name   string  `json:"name"`
	Topics []Topic `json:"topics"`
}

var categories = []Category{
	{Name: "Overview", Topics: []Topic{
		{"Executive Summary", "A concise overview of the company's financial position, key strengths, risks, and investment potential."},
		{"Company Overview", "Background information on the company's history, business model, products/services, and market positioning."},
	}},
	{Name: "Market Analysis", Topics: []Topic{
		{"Industry Analysis", "Assessment of industry trends, market size, growth rates, and key success factors in the company's sector."},
		{"Market Position & Competitive Analysis", "Evaluation of market share, competitive advantages, and positioning relative to competitors."},
	}},
	{Name: "Financial Analysis", Topics: []Topic{
		{"Financial Performance & Metrics", "Detailed analysis of revenue, profitability, cash flow, and key financial ratios with historical context."},
		{"Valuation Analysis", "Estimation of company value using multiple methodologies (DCF, comparable companies, precedent transactions)."},
		{"Capital Structure & Debt Profile", "Analysis of the company's debt, equity, leverage ratios, and financing options."},
	}},
	{Name: "Operations", Topics: []Topic{
		{"Operational Assessment", "Evaluation of operational efficiency, production capacity, supply chain, and cost structure."},
		{"Management & Governance", "Assessment of leadership team, board composition, decision-making processes, and corporate governance."},
		{"Customer & Supplier Relationships", "Analysis of customer concentration, supplier dependencies, and relationship management."},
	}},
	{Name: "Risk & Growth", Topics: []Topic{
		{"Risk Assessment & Mitigation Strategies", "Identification of key business, financial, and market risks with mitigation approaches."},
		{"Growth Opportunities & Forecasts", "Projection of future performance and identification of growth avenues and expansion potential."},
		{"Legal & Regulatory Considerations", "Overview of legal compliance, regulatory environment, and potential legal risks or opportunities."},
	}},
	{Name: "Investment", Topics: []Topic{
		{"Investment Thesis & Recommendations", "Strategic rationale for investment with clear recommendations and expected returns."},
		{"Exit Strategy Considerations", "Analysis of potential exit options, timing, and value creation opportunities for investors."},
	}},
}

var descriptions = func() map[string]string {
	m := make(map[string]string)
	for _, c := range categories {
		for _, t := range c.Topics {
			m[t.Name] = t.Description
		}
	}
	return m
}()

// Categories 返回分组后的话题目录副本
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{Name: c.Name, Topics: append([]Topic(nil), c.Topics...)}
	}
	return out
}

// Topics 按目录顺序返回全部话题名，即"全选"
func Topics() []string {
	var out []string
	for _, c := range categories {
		for _, t := range c.Topics {
			out = append(out, t.Name)
		}
	}
	return out
}

// Describe 返回话题描述
func Describe(topic string) (string, bool) {
	d, ok := descriptions[topic]
	return d, ok
}

// CheckTopics 拒绝目录之外的话题
func CheckTopics(topics []string) error {
	ive := &model.InputValidationError{}
	for _, t := range topics {
		if _, ok := descriptions[t]; !ok {
			ive.Errors = append(ive.Errors, model.FieldError{Field: "topics", Reason: "unknown topic " + t})
		}
	}
	if len(ive.Errors) > 0 {
		return ive
	}
	return nil
}

// Comprehensive 将选中的话题包装为单一分类
func Comprehensive(topics []string) []model.ReportCategory {
	return []model.ReportCategory{{Name: ComprehensiveCategory, Topics: topics}}
}
