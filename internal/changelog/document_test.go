package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Release notes
=============

version 1.1.0 - soon come
-------------------------
Milestone: 1.1.0

- new placement constraint

version 1.0.0 - 25 Dec 2024
---------------------------

- fixed bug X
- fixed bug Y


version 0.9.0 - 01 Nov 2024
---------------------------
- first public release
`

func TestParse(t *testing.T) {
	doc := Parse(sample)

	assert.Equal(t, []string{"Release notes", "=============", ""}, doc.Preamble)
	require.Len(t, doc.Sections, 3)

	tests := []struct {
		version string
		date    string
		log     string
	}{
		{version: "1.1.0", date: Unreleased, log: "- new placement constraint"},
		{version: "1.0.0", date: "25 Dec 2024", log: "- fixed bug X\n- fixed bug Y"},
		{version: "0.9.0", date: "01 Nov 2024", log: "- first public release"},
	}
	for i, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			sec := doc.Sections[i]
			assert.Equal(t, tt.version, sec.Version)
			assert.Equal(t, tt.date, sec.Date)
			assert.Equal(t, tt.log, sec.Log())
		})
	}
}

func TestRenderIsIdentity(t *testing.T) {
	inputs := map[string]string{
		"sample":             sample,
		"empty":              "",
		"preamble only":      "Release notes\n\nNothing yet.\n",
		"no trailing":        "version 1.0 - soon come\n---\n- a",
		"no underline":       "version 1.0 - soon come\n- a\n- b\n",
		"windows endings":    "Title\r\n\r\nversion 1.0 - 02 Jan 2024\r\n---\r\n- a\r\n",
		"header at top":      "version 2.0 - soon come\n--\n\nversion 1.0 - 02 Jan 2024\n--\n",
		"blank lines inside": "version 1.0 - soon come\n---\n- a\n\n\n- b\n\n",
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, in, Parse(in).Render())
		})
	}
}

func TestFind(t *testing.T) {
	doc := Parse(sample)

	require.NotNil(t, doc.Find("1.0.0"))
	assert.Equal(t, "1.0.0", doc.Find("1.0.0").Version)
	assert.Nil(t, doc.Find("1.0"))
	assert.Nil(t, doc.Find("2.0.0"))
}

func TestBodyRunsUntilNextHeader(t *testing.T) {
	content := "version 1.0 - soon come\n---\n- a\n\n- b\n\n\n- c\nversion 0.9 - 01 Jan 2024\n---\n- z\n"
	doc := Parse(content)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "- a\n\n- b\n\n\n- c", doc.Sections[0].Log())
	assert.Equal(t, "- z", doc.Sections[1].Log())
}

func TestLogStripsCarriageReturns(t *testing.T) {
	doc := Parse("version 1.0 - soon come\r\n---\r\n- a\r\n- b\r\n\r\n")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "- a\n- b", doc.Sections[0].Log())
}

func TestMilestoneLineIsNotBody(t *testing.T) {
	doc := Parse("version 1.0 - soon come\n---\nMilestone: 1.0 https://github.com/o/r/milestone/3\n\n- a\n")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "- a", doc.Sections[0].Log())
}

func TestMilestoneProseIsBody(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "Other version", line: "Milestone: 0.9"},
		{name: "Prose", line: "Milestone: reached 1k users"},
		{name: "Bare prefix", line: "Milestone:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "version 1.0 - soon come\n---\n" + tt.line + "\n- a\n"
			doc := Parse(content)
			require.Len(t, doc.Sections, 1)

			assert.Equal(t, tt.line+"\n- a", doc.Sections[0].Log())
			assert.Equal(t, content, doc.Render())
		})
	}
}

func TestSetDate(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "Placeholder", header: "version 1.0 - soon come", want: "version 1.0 - 25 Dec 2024"},
		{name: "Existing date", header: "version 1.0 - 01 Jan 2024", want: "version 1.0 - 25 Dec 2024"},
		{name: "Extra spacing", header: "version  1.0  -   soon come", want: "version  1.0  - 25 Dec 2024"},
		{name: "Empty date", header: "version 1.0 -", want: "version 1.0 - 25 Dec 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.header + "\n---\n- a\n")
			require.Len(t, doc.Sections, 1)

			doc.Sections[0].SetDate("25 Dec 2024")
			assert.Equal(t, tt.want, doc.Sections[0].Header())
			assert.Equal(t, "25 Dec 2024", doc.Sections[0].Date)
			assert.Equal(t, tt.want+"\n---\n- a\n", doc.Render())
		})
	}
}

func TestPrepend(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Ahead of existing sections",
			in:   "Notes\n=====\n\nversion 1.0 - 01 Jan 2024\n---\n- a\n",
			want: "Notes\n=====\n\n" +
				"version 1.1 - soon come\n-----------------------\nMilestone: 1.1\n\n" +
				"version 1.0 - 01 Jan 2024\n---\n- a\n",
		},
		{
			name: "Preamble without separator",
			in:   "Notes\nversion 1.0 - 01 Jan 2024\n---\n- a\n",
			want: "Notes\n\n" +
				"version 1.1 - soon come\n-----------------------\nMilestone: 1.1\n\n" +
				"version 1.0 - 01 Jan 2024\n---\n- a\n",
		},
		{
			name: "Empty file",
			in:   "",
			want: "version 1.1 - soon come\n-----------------------\nMilestone: 1.1\n\n",
		},
		{
			name: "Title only",
			in:   "Notes",
			want: "Notes\n\nversion 1.1 - soon come\n-----------------------\nMilestone: 1.1\n\n",
		},
		{
			name: "Introduction stays in the preamble",
			in:   "Notes\n\nAll notable changes are listed here.\n",
			want: "Notes\n\nAll notable changes are listed here.\n\n" +
				"version 1.1 - soon come\n-----------------------\nMilestone: 1.1\n\n",
		},
		{
			name: "Introduction ahead of existing sections",
			in:   "Notes\n\nAll notable changes are listed here.\n\nversion 1.0 - 01 Jan 2024\n---\n- a\n",
			want: "Notes\n\nAll notable changes are listed here.\n\n" +
				"version 1.1 - soon come\n-----------------------\nMilestone: 1.1\n\n" +
				"version 1.0 - 01 Jan 2024\n---\n- a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.in)
			doc.Prepend(NewSection("1.1", ""))

			assert.Equal(t, tt.want, doc.Render())
			assert.Equal(t, "1.1", doc.Sections[0].Version)
			assert.Empty(t, doc.Sections[0].Log())

			reparsed := Parse(doc.Render())
			require.NotNil(t, reparsed.Find("1.1"))
			assert.Empty(t, reparsed.Find("1.1").Log())
		})
	}
}

func TestNewSectionWithMilestoneURL(t *testing.T) {
	sec := NewSection("2.0", "https://github.com/o/r/milestone/7")
	assert.Equal(t, []string{
		"version 2.0 - soon come",
		"-----------------------",
		"Milestone: 2.0 https://github.com/o/r/milestone/7",
		"",
	}, sec.lines())
	assert.Empty(t, sec.Log())
}
