package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/blueprint/internal"
)

// MarkdownExporter exports a blueprint as a Markdown document
type MarkdownExporter struct{}

// Export writes a heading, a summary and the pretty JSON in a fenced block
func (e *MarkdownExporter) Export(v internal.Value, w io.Writer) error {
	blob, err := internal.Encode(v)
	if err != nil {
		return err
	}
	text := v.Pretty()

	// Header
	title := "Blueprint"
	if name, ok := v.Get("name"); ok && name.Kind() == internal.KindString && name.Str() != "" {
		title = name.Str()
	}
	_, _ = fmt.Fprintf(w, "# %s\n\n", escapeMarkdown(title))

	_, _ = fmt.Fprintf(w, "**Type:** %s  \n", v.Kind())
	if v.Kind() == internal.KindObject || v.Kind() == internal.KindArray {
		_, _ = fmt.Fprintf(w, "**Entries:** %d  \n", v.Len())
	}
	_, _ = fmt.Fprintf(w, "**JSON size:** %s  \n", internal.HumanSize(len(v.Compact())))
	_, _ = fmt.Fprintf(w, "**Blob size:** %s\n\n", internal.HumanSize(len(blob)))

	if v.Kind() == internal.KindObject && v.Len() > 0 {
		_, _ = fmt.Fprintf(w, "| Key | Type |\n|---|---|\n")
		for _, m := range v.Members() {
			_, _ = fmt.Fprintf(w, "| %s | %s |\n", escapeTableCell(m.Key), m.Value.Kind())
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## JSON\n\n")
	ticks := fence(text)
	_, _ = fmt.Fprintf(w, "%sjson\n%s\n%s\n\n", ticks, text, ticks)
	_, _ = fmt.Fprintf(w, "## Blob\n\n")
	_, _ = fmt.Fprintf(w, "```\n%s\n```\n", blob)

	return nil
}

// escapeMarkdown escapes emphasis markers in inline text
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	return text
}

func escapeTableCell(text string) string {
	return strings.ReplaceAll(escapeMarkdown(text), "|", "\\|")
}

// fence returns a backtick run longer than any inside content
func fence(content string) string {
	ticks := "```"
	for strings.Contains(content, ticks) {
		ticks += "`"
	}
	return ticks
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
