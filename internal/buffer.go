package internal

import (
	"fmt"
	"strings"
	"unicode"
)

// Position is a line and column in a text buffer.
// Both are 0-indexed; Column counts runes from the start of the line.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Range is a span of text from From (inclusive) to To (exclusive)
type Range struct {
	From Position
	To   Position
}

// IsEmpty reports whether the range covers no text
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// TextBuffer is the editable text the decoded blueprint is shown in. It
// owns match highlighting, the selection and the viewport.
type TextBuffer interface {
	Text() string
	SetText(text string)

	// FindForward returns the first case-insensitive literal match of
	// query starting at or after from.
	FindForward(query string, from Position) (Range, bool)
	// FindBackward returns the last case-insensitive literal match of
	// query ending at or before from.
	FindBackward(query string, from Position) (Range, bool)

	ClearMarks()
	Mark(r Range)
	Select(r Range)
	ScrollIntoView(r Range, margin int)

	LineCount() int
	LineLength(line int) int
}

// Document is an in-memory TextBuffer. Not safe for concurrent use.
type Document struct {
	lines     [][]rune
	marks     []Range
	selection Range
	viewport  Range
	margin    int
}

// NewDocument creates a document holding text
func NewDocument(text string) *Document {
	d := &Document{}
	d.SetText(text)
	return d
}

// Text returns the full contents
func (d *Document) Text() string {
	parts := make([]string, len(d.lines))
	for i, line := range d.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the contents, dropping marks and resetting the selection
func (d *Document) SetText(text string) {
	split := strings.Split(text, "\n")
	d.lines = make([][]rune, len(split))
	for i, line := range split {
		d.lines[i] = []rune(line)
	}
	d.marks = nil
	d.selection = Range{}
	d.viewport = Range{}
	d.margin = 0
}

// Line returns the text of one line
func (d *Document) Line(line int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}
	return string(d.lines[line])
}

// LineCount returns the number of lines; an empty document has one
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineLength returns the length of a line in runes
func (d *Document) LineLength(line int) int {
	if line < 0 || line >= len(d.lines) {
		return 0
	}
	return len(d.lines[line])
}

// ClearMarks removes all match highlights
func (d *Document) ClearMarks() {
	d.marks = nil
}

// Mark highlights a range
func (d *Document) Mark(r Range) {
	d.marks = append(d.marks, r)
}

// Marks returns the highlighted ranges in the order they were added
func (d *Document) Marks() []Range {
	out := make([]Range, len(d.marks))
	copy(out, d.marks)
	return out
}

// Select sets the selection
func (d *Document) Select(r Range) {
	d.selection = r
}

// Selection returns the current selection
func (d *Document) Selection() Range {
	return d.selection
}

// ScrollIntoView records the range that must be visible, with margin lines
// of context around it.
func (d *Document) ScrollIntoView(r Range, margin int) {
	d.viewport = r
	d.margin = margin
}

// Viewport returns the range last scrolled into view and the number of
// context lines requested around it
func (d *Document) Viewport() (Range, int) {
	return d.viewport, d.margin
}

// FindForward implements TextBuffer
func (d *Document) FindForward(query string, from Position) (Range, bool) {
	parts := splitQuery(query)
	if parts == nil {
		return Range{}, false
	}
	from = d.clip(from)

	for line := from.Line; line < len(d.lines); line++ {
		start := 0
		if line == from.Line {
			start = from.Column
		}
		for col := start; col <= len(d.lines[line]); col++ {
			if end, ok := d.matchAt(line, col, parts); ok {
				return Range{From: Position{Line: line, Column: col}, To: end}, true
			}
		}
	}
	return Range{}, false
}

// FindBackward implements TextBuffer
func (d *Document) FindBackward(query string, from Position) (Range, bool) {
	parts := splitQuery(query)
	if parts == nil {
		return Range{}, false
	}
	from = d.clip(from)

	for line := from.Line; line >= 0; line-- {
		for col := len(d.lines[line]); col >= 0; col-- {
			start := Position{Line: line, Column: col}
			if start.Compare(from) > 0 {
				continue
			}
			if end, ok := d.matchAt(line, col, parts); ok && end.Compare(from) <= 0 {
				return Range{From: start, To: end}, true
			}
		}
	}
	return Range{}, false
}

func (d *Document) clip(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(d.lines) {
		last := len(d.lines) - 1
		return Position{Line: last, Column: len(d.lines[last])}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if p.Column > len(d.lines[p.Line]) {
		p.Column = len(d.lines[p.Line])
	}
	return p
}

// matchAt checks whether the query, split into lines, matches starting at
// line/col and returns the end of the match.
func (d *Document) matchAt(line, col int, parts [][]rune) (Position, bool) {
	text := d.lines[line]
	if len(parts) == 1 {
		q := parts[0]
		if col+len(q) > len(text) || !equalFoldRunes(text[col:col+len(q)], q) {
			return Position{}, false
		}
		return Position{Line: line, Column: col + len(q)}, true
	}

	// a multi-line query must run to the end of its first line
	first := parts[0]
	if len(text)-col != len(first) || !equalFoldRunes(text[col:], first) {
		return Position{}, false
	}
	for k := 1; k < len(parts)-1; k++ {
		l := line + k
		if l >= len(d.lines) || !equalFoldRunes(d.lines[l], parts[k]) {
			return Position{}, false
		}
	}
	last := parts[len(parts)-1]
	l := line + len(parts) - 1
	if l >= len(d.lines) || len(d.lines[l]) < len(last) || !equalFoldRunes(d.lines[l][:len(last)], last) {
		return Position{}, false
	}
	return Position{Line: l, Column: len(last)}, true
}

func splitQuery(query string) [][]rune {
	if query == "" {
		return nil
	}
	split := strings.Split(query, "\n")
	parts := make([][]rune, len(split))
	for i, s := range split {
		parts[i] = []rune(s)
	}
	return parts
}

func equalFoldRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalFoldRune(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}
