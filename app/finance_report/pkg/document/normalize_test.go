package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSections(t *testing.T) {
	topics := []string{"Executive Summary", "Market Position"}

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "one heading per topic",
			doc:  "# Executive Summary\nstrong year\n## Market Position\nleader",
			want: "# Executive Summary\nstrong year" + SectionSeparator + "## Market Position\nleader",
		},
		{
			name: "preamble before first heading",
			doc:  "# Report\nintro\n# Executive Summary\nbody",
			want: "# Report\nintro" + SectionSeparator + "# Executive Summary\nbody",
		},
		{
			name: "surrounding whitespace on heading line",
			doc:  "  ## Market Position  \nleader",
			want: "  ## Market Position  \nleader",
		},
		{
			name: "no matching heading",
			doc:  "### Executive Summary\nbody\n# Executive Summary Extended\nmore",
			want: "### Executive Summary\nbody\n# Executive Summary Extended\nmore",
		},
		{
			name: "empty document",
			doc:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSections(tt.doc, topics))
		})
	}
}

func TestNormalizeSections_SectionCount(t *testing.T) {
	topics := []string{"A", "B", "C"}
	doc := "# A\none\n\n# B\ntwo\n\n## C\nthree"

	got := NormalizeSections(doc, topics)
	parts := strings.Split(got, SectionSeparator)
	assert.Len(t, parts, len(topics))
	assert.True(t, strings.HasPrefix(parts[0], "# A"))
	assert.True(t, strings.HasPrefix(parts[1], "# B"))
	assert.True(t, strings.HasPrefix(parts[2], "## C"))
}

func TestNormalizeSections_NoTopicsKeepsInput(t *testing.T) {
	doc := "# Executive Summary\nbody\n"
	assert.Equal(t, doc, NormalizeSections(doc, nil))
}
