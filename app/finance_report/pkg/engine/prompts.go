package engine

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/finance_report/app/finance_report/pkg/model"
)

const sectionSystemTpl = `You are a senior financial analyst with more than 15 years of private equity experience.
You are writing one section of a financial report about %s, a company in the %s industry.

Write ONLY the section "%s".

Be thorough, quantitatively precise and actionable:
- derive implied metrics that are not stated explicitly
- benchmark against the industry
- add sensitivity analysis where it is relevant
- quantify risks and opportunities

IMPORTANT: the content must be new. Never repeat information already covered by earlier sections.
When this section overlaps with an earlier one, give a different perspective, deeper analysis or
complementary information instead of the same points. A risk that was already named needs further
quantification or mitigation, not a restatement; metrics that were already covered need another angle.

Keep the tone professional and the formatting minimal.`

const sectionUserTpl = `Write the "%s" section of a financial report on:

**Company:** %s
**Industry:** %s
**Financials:** %s

The response must:
1. cover ONLY the "%s" section
2. use minimal markdown
3. give specific numbers
4. compute additional metrics where appropriate
5. include industry benchmarks
6. quantify risks and opportunities

CRITICAL: do not repeat anything from earlier sections. Where a similar subject was already
covered, add a new perspective or more depth.`

const priorContextTpl = `

The following has already been covered by earlier sections. DO NOT REPEAT it:

%s

Only add insights that have not been mentioned yet while staying on the "%s" section.
If a similar subject has to be addressed, approach it from another angle or in more depth.`

const sectionUserTail = `

Do not include the section heading, it is added separately.`

const conclusionSystemTpl = `You are a senior financial analyst with more than 15 years of private equity experience.
You are writing the conclusion of a financial report about %s, a company in the %s industry.

Summarize the key points of all report sections concisely.

IMPORTANT: do not introduce anything the sections did not cover. Only summarize the most
important insights of the sections below.`

const conclusionUserTpl = `Write the conclusion of a financial report on:

**Company:** %s
**Industry:** %s

The conclusion must:
1. summarize the key points of every section
2. highlight the most important insights
3. balance the company's strengths against its challenges
4. stay concise, at most 3 to 4 paragraphs
5. introduce no information that the sections did not cover

Sections covered by the report:`

const conclusionUserTail = `

Tie these sections together into a conclusion that summarizes the overall findings.
Do not add a conclusion heading, it is added separately.`

func sectionPrompts(topic string, profile model.CompanyProfile, prior string) (string, string) {
	system := fmt.Sprintf(sectionSystemTpl, profile.Name, profile.Industry, topic)

	var sb strings.Builder
	fmt.Fprintf(&sb, sectionUserTpl, topic, profile.Name, profile.Industry, profile.Financials, topic)
	if prior != "" {
		fmt.Fprintf(&sb, priorContextTpl, prior, topic)
	}
	sb.WriteString(sectionUserTail)
	return system, sb.String()
}

func conclusionPrompts(profile model.CompanyProfile, sections []model.SectionResult, excerptLen int) (string, string) {
	system := fmt.Sprintf(conclusionSystemTpl, profile.Name, profile.Industry)

	var sb strings.Builder
	fmt.Fprintf(&sb, conclusionUserTpl, profile.Name, profile.Industry)
	for _, s := range sections {
		fmt.Fprintf(&sb, "\n\n### %s\n%s", s.Topic, Excerpt(s.Body, excerptLen))
	}
	sb.WriteString(conclusionUserTail)
	return system, sb.String()
}

// Excerpt 截取前 n 个字符，超出时追加省略号
func Excerpt(body string, n int) string {
	r := []rune(body)
	if len(r) <= n {
		return body
	}
	return string(r[:n]) + "..."
}
