// Package changelog reads and rewrites the project's Markdown changelog.
//
// The file is made of a free-form preamble followed by one section per
// version, newest first:
//
//	version 1.2.0 - 25 Dec 2024
//	---------------------------
//	Milestone: 1.2.0
//
//	- fixed bug X
//
// A section runs from its header to the next header or the end of the file.
// The underline and the milestone line are optional. Everything that follows
// them is the section body, which is what gets published as release notes.
// Lines before the first header form the preamble and belong to no section.
package changelog

import (
	"regexp"
	"strings"
)

const (
	// Unreleased is the date placeholder of a section that has not shipped yet.
	Unreleased = "soon come"

	// DateLayout is the layout of release dates in section headers.
	DateLayout = "02 Jan 2006"

	milestonePrefix = "Milestone:"
)

var (
	headerPattern    = regexp.MustCompile(`^(version\s+(\S+)\s+-)\s*(.*)$`)
	underlinePattern = regexp.MustCompile(`^-+\s*$`)
)

// Document is a parsed changelog.
type Document struct {
	// Preamble holds the lines before the first section header.
	Preamble []string

	// Sections are kept in file order.
	Sections []*Section

	trailingNewline bool
}

// Section is a single version entry of the changelog.
type Section struct {
	// Version is the version named in the header.
	Version string

	// Date is the header text after the dash: a release date or Unreleased.
	Date string

	// Body holds the free text lines of the section.
	Body []string

	header    string
	underline *string
	milestone *string
}

// Parse splits content into a preamble and its sections. Rendering the
// returned document without changes gives back content unchanged.
func Parse(content string) *Document {
	doc := &Document{}
	if content == "" {
		return doc
	}

	lines := strings.Split(content, "\n")
	if strings.HasSuffix(content, "\n") {
		doc.trailingNewline = true
		lines = lines[:len(lines)-1]
	}

	i := 0
	for i < len(lines) && !isHeader(lines[i]) {
		doc.Preamble = append(doc.Preamble, lines[i])
		i++
	}

	for i < len(lines) {
		m := headerPattern.FindStringSubmatch(trimCR(lines[i]))
		sec := &Section{Version: m[2], Date: strings.TrimSpace(m[3]), header: lines[i]}
		i++

		if i < len(lines) && underlinePattern.MatchString(trimCR(lines[i])) {
			sec.underline = &lines[i]
			i++
		}
		if i < len(lines) && isMilestoneLine(lines[i], sec.Version) {
			sec.milestone = &lines[i]
			i++
		}
		for i < len(lines) && !isHeader(lines[i]) {
			sec.Body = append(sec.Body, lines[i])
			i++
		}
		doc.Sections = append(doc.Sections, sec)
	}

	return doc
}

// Render serializes the document back to text.
func (d *Document) Render() string {
	var lines []string
	lines = append(lines, d.Preamble...)
	for _, sec := range d.Sections {
		lines = append(lines, sec.lines()...)
	}

	out := strings.Join(lines, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	return out
}

// Find returns the first section for version v, or nil.
func (d *Document) Find(v string) *Section {
	for _, sec := range d.Sections {
		if sec.Version == v {
			return sec
		}
	}
	return nil
}

// Prepend inserts sec right after the preamble, ahead of every existing
// section. Preamble lines never become part of sec.
func (d *Document) Prepend(sec *Section) {
	if n := len(d.Preamble); n > 0 && !isBlank(d.Preamble[n-1]) {
		d.Preamble = append(d.Preamble, "")
	}
	if len(d.Sections) == 0 {
		d.trailingNewline = true
	}
	d.Sections = append([]*Section{sec}, d.Sections...)
}

// NewSection builds the section of a version that has not been released yet.
// milestoneURL is appended to the milestone line when not empty.
func NewSection(v, milestoneURL string) *Section {
	sec := &Section{Version: v, Date: Unreleased, Body: []string{""}}
	sec.header = "version " + v + " - " + Unreleased

	underline := strings.Repeat("-", len(sec.header))
	sec.underline = &underline

	milestone := milestonePrefix + " " + v
	if milestoneURL != "" {
		milestone += " " + milestoneURL
	}
	sec.milestone = &milestone
	return sec
}

// SetDate replaces the date portion of the header.
func (s *Section) SetDate(date string) {
	raw := trimCR(s.header)
	m := headerPattern.FindStringSubmatch(raw)
	s.header = m[1] + " " + date + s.header[len(raw):]
	s.Date = date
}

// Header returns the raw header line.
func (s *Section) Header() string {
	return trimCR(s.header)
}

// Log returns the section body with leading blank lines and trailing
// whitespace removed.
func (s *Section) Log() string {
	body := s.Body
	for len(body) > 0 && isBlank(body[0]) {
		body = body[1:]
	}
	text := strings.Join(body, "\n")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimRight(text, " \t\r\n")
}

func (s *Section) lines() []string {
	lines := []string{s.header}
	if s.underline != nil {
		lines = append(lines, *s.underline)
	}
	if s.milestone != nil {
		lines = append(lines, *s.milestone)
	}
	return append(lines, s.Body...)
}

func isHeader(line string) bool {
	return headerPattern.MatchString(trimCR(line))
}

// isMilestoneLine reports whether line is the back-reference to the
// milestone of version v, optionally followed by a link.
func isMilestoneLine(line, v string) bool {
	fields := strings.Fields(trimCR(line))
	return len(fields) >= 2 && len(fields) <= 3 && fields[0] == milestonePrefix && fields[1] == v
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}
