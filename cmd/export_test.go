package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/blueprint/internal"
	"github.com/iksnae/blueprint/testutil"
)

func TestExportCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name:    "export with invalid format",
			args:    []string{"export", "--format", "invalid", "--blob", testutil.BeltBlob},
			wantErr: true,
		},
		{
			name: "yaml to stdout",
			args: []string{"export", "--format", "yaml", "--blob", testutil.BeltBlob},
			want: "name: Belt a.b",
		},
		{
			name: "markdown to stdout",
			args: []string{"export", "--format", "md", "--blob", testutil.BeltBlob},
			want: "# Belt a.b",
		},
		{
			name: "jsonl to stdout",
			args: []string{"export", "--format", "jsonl", "--blob", testutil.BeltBlob},
			want: testutil.BeltJSON + "\n",
		},
		{
			name:    "malformed blob",
			args:    []string{"export", "--blob", testutil.MalformedBlob},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, "", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("exportCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q should contain %q", out, tt.want)
			}
		})
	}
}

func TestExportCommand_OutFile(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "nested", "belt.json")

	_, errOut, err := run(t, "", "export", "--out", path, "--blob", testutil.BeltBlob)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(errOut, "Export complete") {
		t.Errorf("stderr = %q", errOut)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	want, _ := internal.ParseValue(testutil.BeltJSON)
	if string(data) != want.Pretty()+"\n" {
		t.Errorf("file = %q", data)
	}
}

func TestExportCommand_OutDirectory(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	if _, _, err := run(t, testutil.BeltBlob, "export", "--format", "blueprint", "--out", dir); err != nil {
		t.Fatalf("export error = %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "blueprint_*.txt"))
	if len(matches) != 1 {
		t.Fatalf("expected one export file, got %v", matches)
	}
	data, _ := os.ReadFile(matches[0])
	want, _ := internal.ParseValue(testutil.BeltJSON)
	if !mustDecode(t, string(data)).Equal(want) {
		t.Error("exported blob does not decode to the input")
	}
}
