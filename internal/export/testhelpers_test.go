package export

import (
	"testing"

	"github.com/iksnae/blueprint/internal"
)

func mustParse(t *testing.T, text string) internal.Value {
	t.Helper()
	v, err := internal.ParseValue(text)
	if err != nil {
		t.Fatalf("ParseValue(%q) error = %v", text, err)
	}
	return v
}
