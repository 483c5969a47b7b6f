package internal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// IsTerminal reports whether stream is an interactive terminal. Anything
// that is not a file, such as a test buffer, is not.
func IsTerminal(stream interface{}) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	printStyled(w, successStyle, "✓", "", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	printStyled(w, errorStyle, "✗", "ERROR: ", message)
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	printStyled(w, infoStyle, "ℹ", "", message)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	printStyled(w, warningStyle, "⚠", "WARNING: ", message)
}

// PrintNotice prints an editor notice with the style of its level.
// Zero notices print nothing.
func PrintNotice(w io.Writer, n Notice) {
	switch n.Level {
	case NoticeSuccess:
		PrintSuccess(w, n.Text)
	case NoticeWarning:
		PrintWarning(w, n.Text)
	case NoticeError:
		PrintError(w, n.Text)
	case NoticeInfo:
		PrintInfo(w, n.Text)
	}
}

func printStyled(w io.Writer, style lipgloss.Style, symbol, plainPrefix, message string) {
	if IsTerminal(w) {
		_, _ = fmt.Fprintf(w, "%s %s\n", style.Render(symbol), message)
		return
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", plainPrefix, message)
}

// ColorJSON syntax-highlights JSON text when w is a terminal
func ColorJSON(w io.Writer, text string) string {
	if !IsTerminal(w) {
		return text
	}
	return string(pretty.Color([]byte(text), nil))
}

// HumanSize formats a byte count for display
func HumanSize(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
