package catalog

import (
	"math/rand/v2"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

// 示例公司与所属行业保持逻辑对应
var exampleCompanies = []struct {
	Name     string
	Industry string
}{
	{"TechNova Solutions", "Software & Technology"},
	{"Meridian Healthcare", "Healthcare & Life Sciences"},
	{"Atlas Manufacturing", "Manufacturing & Industrial"},
	{"Quantum Analytics", "Financial Services"},
	{"Horizon Renewables", "Renewable Energy"},
	{"Pinnacle Financial", "Financial Services"},
	{"Vertex Pharmaceuticals", "Pharmaceuticals & Biotechnology"},
	{"Sapphire Software", "Software & Technology"},
	{"Granite Construction", "Construction & Infrastructure"},
	{"Phoenix Aerospace", "Aerospace & Defense"},
}

var exampleFinancials = []string{
	"Revenue: $25M, EBITDA: $5M (20% margin), YoY Growth: 35%, Gross Margin: 75%, Customer Acquisition Cost: $5,000, LTV: $25,000, Churn: 5% annually",
	"Revenue: $50M, EBITDA: $12M (24% margin), YoY Growth: 15%, Gross Margin: 60%, R&D: 10% of revenue, SG&A: 25% of revenue, Capex: $2M annually",
	"Revenue: $100M, EBITDA: $15M (15% margin), YoY Growth: 8%, Gross Margin: 40%, Working Capital: 20% of revenue, Debt: $30M, Interest Coverage Ratio: 5x",
	"Revenue: $75M, EBITDA: $18M (24% margin), YoY Growth: 20%, Gross Margin: 65%, Operating Cash Flow: $20M, Capex: $5M, Net Debt: $25M",
	"Revenue: $30M, EBITDA: $3M (10% margin), YoY Growth: 50%, Gross Margin: 80%, ARR: $28M, CAC Payback: 12 months, Rule of 40 Score: 60",
}

// ExampleProfile 随机生成一份示例公司信息，r 为 nil 时使用全局随机源
func ExampleProfile(r *rand.Rand) model.CompanyProfile {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	c := exampleCompanies[intN(len(exampleCompanies))]
	return model.CompanyProfile{
		Name:       c.Name,
		Industry:   c.Industry,
		Financials: exampleFinancials[intN(len(exampleFinancials))],
	}
}
