package export

import (
	"io"

	"github.com/iksnae/blueprint/internal"
)

// JSONLExporter exports a blueprint as a single line of compact JSON, so
// several exports can be appended into one JSON Lines file
type JSONLExporter struct{}

// Export writes v compactly followed by a newline
func (e *JSONLExporter) Export(v internal.Value, w io.Writer) error {
	_, err := io.WriteString(w, v.Compact()+"\n")
	return err
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
