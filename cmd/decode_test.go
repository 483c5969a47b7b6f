package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/blueprint/internal"
	"github.com/iksnae/blueprint/testutil"
)

func TestDecodeCommand(t *testing.T) {
	belt, _ := internal.ParseValue(testutil.BeltJSON)

	tests := []struct {
		name    string
		stdin   string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "argument",
			args: []string{"decode", testutil.BeltBlob},
			want: belt.Pretty() + "\n",
		},
		{
			name:  "stdin dash",
			stdin: "  " + testutil.BeltBlob + "\n",
			args:  []string{"decode", "-"},
			want:  belt.Pretty() + "\n",
		},
		{
			name:  "implicit stdin",
			stdin: testutil.BeltBlob,
			args:  []string{"decode"},
			want:  belt.Pretty() + "\n",
		},
		{
			name: "path",
			args: []string{"decode", "--path", "entities.1.name", testutil.BeltBlob},
			want: "\"Foo\"\n",
		},
		{
			name: "yaml",
			args: []string{"decode", "--format", "yaml", testutil.BeltBlob},
			want: "name: Belt a.b\n",
		},
		{
			name:    "missing path",
			args:    []string{"decode", "--path", "nope", testutil.BeltBlob},
			wantErr: true,
		},
		{
			name:    "malformed",
			args:    []string{"decode", testutil.MalformedBlob},
			wantErr: true,
		},
		{
			name:    "empty",
			stdin:   "   ",
			args:    []string{"decode"},
			wantErr: true,
		},
		{
			name:    "bad format",
			args:    []string{"decode", "--format", "xml", testutil.BeltBlob},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.stdin, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decode error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.name == "yaml" {
				if !strings.HasPrefix(out, tt.want) {
					t.Errorf("output = %q, want prefix %q", out, tt.want)
				}
				return
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestDecodeCommand_File(t *testing.T) {
	path := testutil.CreateBlobFile(t, testutil.SampleBlob)

	out, _, err := run(t, "", "decode", "--file", path)
	if err != nil {
		t.Fatalf("decode --file error = %v", err)
	}
	if !strings.Contains(out, `"a": 1`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestDecodeCommand_RecordsHistory(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	if _, _, err := runIn(t, dir, "", "decode", testutil.MalformedBlob); err == nil {
		t.Fatal("malformed blob should fail to decode")
	}
	if _, _, err := runIn(t, dir, "", "decode", "--no-history", testutil.SampleBlob); err != nil {
		t.Fatalf("decode --no-history error = %v", err)
	}

	out, _, err := runIn(t, dir, "", "history", "show", "1")
	if err != nil {
		t.Fatalf("history show error = %v", err)
	}
	if strings.TrimSpace(out) != testutil.MalformedBlob {
		t.Errorf("newest entry = %q, want the malformed blob", out)
	}

	if _, _, err := runIn(t, dir, "", "history", "show", "2"); err == nil {
		t.Error("--no-history decode should not be recorded")
	}
}
