package export

import (
	"io"

	"github.com/iksnae/blueprint/internal"
)

// BlueprintExporter writes the encoded blob
type BlueprintExporter struct{}

// Export encodes v and writes the blob followed by a newline
func (e *BlueprintExporter) Export(v internal.Value, w io.Writer) error {
	blob, err := internal.Encode(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, blob+"\n")
	return err
}

// Extension returns the file extension for this format
func (e *BlueprintExporter) Extension() string {
	return "txt"
}
