// Package document 报告文本后处理：按话题标题重新分节，以及导出独立 HTML 页面
package document

import "strings"

// SectionSeparator 章节之间的分隔线
const SectionSeparator = "\n\n---\n\n"

// NormalizeSections 按所选话题的一级/二级标题行重新切分文档，再用统一分隔线拼接。
// 标题行去除首尾空白后必须与 "# 话题" 或 "## 话题" 完全相同。
// 没有任何标题命中时整篇文档作为一个章节原样返回
func NormalizeSections(doc string, topics []string) string {
	headings := make(map[string]struct{}, len(topics)*2)
	for _, t := range topics {
		headings["# "+t] = struct{}{}
		headings["## "+t] = struct{}{}
	}

	var (
		sections []string
		current  []string
	)
	for _, line := range strings.Split(doc, "\n") {
		if _, ok := headings[strings.TrimSpace(line)]; ok {
			if len(current) > 0 {
				sections = append(sections, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, strings.Join(current, "\n"))
	}

	return strings.Join(sections, SectionSeparator)
}
