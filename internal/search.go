package internal

import (
	"regexp"
	"strings"
)

// scrollMargin is the number of context lines kept around a selected match
const scrollMargin = 50

// SearchState is the cursor of an interactive search. The zero value is
// Idle; an Active state carries the query and the range of the current
// match (or of the wrap point after a failed search). States are values:
// every SearchEngine call takes one and returns the next.
type SearchState struct {
	active bool
	query  string
	match  Range
}

// Active reports whether a search is in progress
func (s SearchState) Active() bool { return s.active }

// Query returns the active query, "" when idle
func (s SearchState) Query() string { return s.query }

// Match returns the range of the current match
func (s SearchState) Match() Range { return s.match }

// activeAt creates a fresh cursor for query with an empty range at pos
func activeAt(query string, pos Position) SearchState {
	return SearchState{active: true, query: query, match: Range{From: pos, To: pos}}
}

// SearchEngine runs find/replace over a TextBuffer
type SearchEngine struct {
	buf TextBuffer
}

// NewSearchEngine creates a SearchEngine over buf
func NewSearchEngine(buf TextBuffer) *SearchEngine {
	return &SearchEngine{buf: buf}
}

// Submit starts a new search. Highlights are cleared; an empty query
// returns the Idle state. Otherwise the cursor starts at the top of the
// document and moves to the first match.
func (e *SearchEngine) Submit(text string) (SearchState, error) {
	e.buf.ClearMarks()

	query := strings.TrimSpace(text)
	if query == "" {
		return SearchState{}, nil
	}
	return e.FindNext(activeAt(query, Position{}))
}

// FindNext moves to the next match after the current one. At the end of
// the document the search restarts from the top exactly once; if that
// finds nothing a NoMatchError is returned together with the wrapped state.
func (e *SearchEngine) FindNext(st SearchState) (SearchState, error) {
	if !st.active {
		return st, nil
	}

	if r, ok := e.buf.FindForward(st.query, st.match.To); ok {
		return e.selectMatch(st.query, r), nil
	}

	wrapped := activeAt(st.query, Position{})
	if r, ok := e.buf.FindForward(wrapped.query, wrapped.match.To); ok {
		return e.selectMatch(st.query, r), nil
	}
	return wrapped, &NoMatchError{Query: st.query}
}

// FindPrevious moves to the match before the current one, wrapping once
// to the end of the last line.
func (e *SearchEngine) FindPrevious(st SearchState) (SearchState, error) {
	if !st.active {
		return st, nil
	}

	if r, ok := e.buf.FindBackward(st.query, st.match.From); ok {
		return e.selectMatch(st.query, r), nil
	}

	lastLine := e.buf.LineCount() - 1
	if lastLine < 0 {
		lastLine = 0
	}
	wrapped := activeAt(st.query, Position{Line: lastLine, Column: e.buf.LineLength(lastLine)})
	if r, ok := e.buf.FindBackward(wrapped.query, wrapped.match.From); ok {
		return e.selectMatch(st.query, r), nil
	}
	return wrapped, &NoMatchError{Query: st.query}
}

func (e *SearchEngine) selectMatch(query string, r Range) SearchState {
	e.buf.Select(r)
	e.buf.ScrollIntoView(r, scrollMargin)
	return SearchState{active: true, query: query, match: r}
}

// Highlight marks every case-insensitive occurrence of query and returns
// how many there are. It does not touch any SearchState.
func (e *SearchEngine) Highlight(query string) int {
	e.buf.ClearMarks()
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}

	count := 0
	pos := Position{}
	for {
		r, ok := e.buf.FindForward(query, pos)
		if !ok {
			return count
		}
		e.buf.Mark(r)
		count++
		pos = r.To
	}
}

// ReplaceAll replaces every literal occurrence of find in the whole buffer
// in a single left-to-right pass. find is never treated as a pattern and
// with is inserted verbatim. When nothing matches the buffer is left
// untouched and a NoMatchError is returned.
func (e *SearchEngine) ReplaceAll(find, with string) (int, error) {
	if find == "" {
		return 0, &EmptyInputError{Field: "find"}
	}

	pattern := regexp.MustCompile(regexp.QuoteMeta(find))
	current := e.buf.Text()

	count := len(pattern.FindAllStringIndex(current, -1))
	updated := pattern.ReplaceAllLiteralString(current, with)
	if updated == current {
		return 0, &NoMatchError{Query: find}
	}

	e.buf.SetText(updated)
	LogDebug("Replaced %d occurrence(s) of %q", count, find)
	return count, nil
}
