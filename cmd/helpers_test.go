package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/blueprint/internal"
	"github.com/iksnae/blueprint/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testClipboard receives copies made by commands under test
var testClipboard = &internal.MemoryClipboard{}

func init() {
	newClipboard = func() internal.Clipboard { return testClipboard }
}

// resetFlags restores every flag to its default so runs do not leak state
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runIn executes the CLI with its data kept in dir and an English locale
func runIn(t *testing.T, dir, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "en_US.UTF-8")

	resetFlags(rootCmd)
	testClipboard.Text, testClipboard.Writes, testClipboard.Err = "", 0, nil

	base := []string{
		"--config", filepath.Join(dir, "config.yaml"),
		"--data-dir", dir,
		"--storage", "yaml",
	}
	rootCmd.SetArgs(append(base, args...))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// run executes the CLI in a fresh data directory
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runIn(t, testutil.CreateTempDir(t), stdin, args...)
}

func mustEncode(t *testing.T, text string) string {
	t.Helper()
	_, blob, err := internal.EncodeText(text)
	if err != nil {
		t.Fatalf("EncodeText(%q) error = %v", text, err)
	}
	return blob
}

func mustDecode(t *testing.T, blob string) internal.Value {
	t.Helper()
	v, err := internal.Decode(blob)
	if err != nil {
		t.Fatalf("Decode(%q) error = %v", blob, err)
	}
	return v
}
