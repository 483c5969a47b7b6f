package export

import (
	"io"

	"github.com/iksnae/blueprint/internal"
)

// JSONExporter exports a blueprint as indented JSON
type JSONExporter struct{}

// Export writes v with two-space indentation and key order preserved
func (e *JSONExporter) Export(v internal.Value, w io.Writer) error {
	_, err := io.WriteString(w, v.Pretty()+"\n")
	return err
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
