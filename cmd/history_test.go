package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/blueprint/internal"
	"github.com/iksnae/blueprint/testutil"
)

func TestHistoryCommand_Empty(t *testing.T) {
	out, _, err := run(t, "", "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "History is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestHistoryCommand_Lifecycle(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	for _, blob := range []string{testutil.SampleBlob, testutil.BeltBlob} {
		if _, _, err := runIn(t, dir, "", "decode", blob); err != nil {
			t.Fatalf("decode error = %v", err)
		}
	}

	out, _, err := runIn(t, dir, "", "history", "list")
	if err != nil {
		t.Fatalf("history list error = %v", err)
	}
	for _, want := range []string{"2 of 30", internal.HistoryEntry{Blob: testutil.BeltBlob}.Preview(), internal.BlobID(testutil.SampleBlob)} {
		if !strings.Contains(out, want) {
			t.Errorf("list output should contain %q\n%s", want, out)
		}
	}
	if strings.Index(out, internal.BlobID(testutil.BeltBlob)) > strings.Index(out, internal.BlobID(testutil.SampleBlob)) {
		t.Error("newest entry should be listed first")
	}

	out, _, err = runIn(t, dir, "", "history", "show", "#2")
	if err != nil || strings.TrimSpace(out) != testutil.SampleBlob {
		t.Errorf("history show #2 = %q, %v", out, err)
	}

	out, _, err = runIn(t, dir, "", "history", "restore", "2")
	if err != nil || !strings.Contains(out, `"a": 1`) {
		t.Errorf("history restore 2 = %q, %v", out, err)
	}

	if _, _, err := runIn(t, dir, "", "history", "show", "9"); err == nil {
		t.Error("show of a missing entry should fail")
	}
	if _, _, err := runIn(t, dir, "", "history", "show", "x"); err == nil {
		t.Error("show of a non-number should fail")
	}

	out, _, err = runIn(t, dir, "", "history", "clear")
	if err != nil || !strings.Contains(out, "History cleared.") {
		t.Errorf("history clear = %q, %v", out, err)
	}
	out, _, _ = runIn(t, dir, "", "history")
	if !strings.Contains(out, "History is empty") {
		t.Errorf("history after clear = %q", out)
	}
}

func TestHistoryCommand_SQLiteBackend(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	testutil.CreateSQLiteFixture(t, filepath.Join(dir, "blueprint.db"), []string{testutil.BeltBlob, testutil.SampleBlob})

	out, _, err := runIn(t, dir, "", "--storage", "sqlite", "history", "show", "1")
	if err != nil {
		t.Fatalf("history show error = %v", err)
	}
	if strings.TrimSpace(out) != testutil.BeltBlob {
		t.Errorf("history show 1 = %q, want the fixture's newest blob", out)
	}
}

func TestHistoryCommand_TransientCommandsDoNotRecord(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	for _, args := range [][]string{
		{"search", "--blob", testutil.BeltBlob, "foo"},
		{"replace", "--blob", testutil.BeltBlob, "Foo", "Bar"},
		{"set", "--blob", testutil.BeltBlob, "name", `"x"`},
		{"export", "--blob", testutil.BeltBlob},
		{"decode", "--no-history", testutil.SampleBlob},
	} {
		if _, _, err := runIn(t, dir, "", args...); err != nil {
			t.Fatalf("%s error = %v", args[0], err)
		}
	}

	out, _, err := runIn(t, dir, "", "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "History is empty") {
		t.Errorf("only decode should record history, got:\n%s", out)
	}
}
