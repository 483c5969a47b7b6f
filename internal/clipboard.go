package internal

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no system clipboard can be used
var ErrClipboardUnavailable = errors.New("clipboard not available on this system")

// Clipboard receives copied text
type Clipboard interface {
	WriteText(text string) error
}

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

// Available reports whether a clipboard utility was found
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteText implements Clipboard
func (c SystemClipboard) WriteText(text string) error {
	if !c.Available() {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// MemoryClipboard keeps the last written text
type MemoryClipboard struct {
	Text   string
	Writes int
	Err    error
}

// WriteText implements Clipboard
func (m *MemoryClipboard) WriteText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	m.Writes++
	return nil
}
