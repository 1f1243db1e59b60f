package document

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	markdown := "# Comprehensive Financial Analysis\n\n" +
		"## Company Information\n\n**Company:** Acme\n\n" +
		"## Comprehensive Analysis\n\n" +
		"### Valuation Analysis\n\n| Metric | Value |\n|---|---|\n| EV/EBITDA | 8.5x |\n\n" +
		"<script>alert(1)</script>\n"
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	page, err := RenderHTML(markdown, "Acme Corp", now)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, "Financial Analysis - Acme Corp", doc.Find("title").Text())
	assert.Equal(t, 1, doc.Find("h1").Length())
	assert.Equal(t, "Financial Analysis - Acme Corp", doc.Find("h1").Text())
	assert.NotContains(t, page, "Comprehensive Financial Analysis")
	assert.NotContains(t, page, "<h2>Comprehensive Analysis</h2>")
	assert.Equal(t, "Company Information", doc.Find("h2").First().Text())
	assert.Equal(t, "Valuation Analysis", doc.Find("h3").Text())
	assert.Equal(t, "EV/EBITDA", doc.Find("table td").First().Text())
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "Generated on 2024-03-05 14:07:09", doc.Find("footer small").Text())
}

func TestRenderHTML_NoCompany(t *testing.T) {
	page, err := RenderHTML("text", "", time.Now())
	require.NoError(t, err)
	assert.Contains(t, page, "<title>Financial Analysis</title>")
}

func TestRenderHTML_EscapesCompany(t *testing.T) {
	page, err := RenderHTML("text", "<b>Evil</b>", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, page, "<b>Evil</b>")
}

func TestHTMLFileName(t *testing.T) {
	assert.Equal(t, "financial_analysis_acme_corp.html", HTMLFileName("Acme Corp"))
	assert.Equal(t, "financial_analysis_tech_solutions_inc..html", HTMLFileName("Tech Solutions Inc."))
	assert.Equal(t, "financial_analysis_.html", HTMLFileName(""))
}
