package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/blueprint/internal"
	"github.com/iksnae/blueprint/testutil"
)

func TestJSONExporter_Export(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "object", json: `{"b":1,"a":[true,null]}`, want: "{\n  \"b\": 1,\n  \"a\": [\n    true,\n    null\n  ]\n}\n"},
		{name: "empty object", json: `{}`, want: "{}\n"},
		{name: "scalar", json: `"<tag>"`, want: "\"<tag>\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter := &JSONExporter{}

			if err := exporter.Export(mustParse(t, tt.json), &buf); err != nil {
				t.Fatalf("JSONExporter.Export() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("JSONExporter.Export() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONExporter_ParsesBack(t *testing.T) {
	v := mustParse(t, testutil.BeltJSON)

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(v, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	back, err := internal.ParseValue(strings.TrimSpace(buf.String()))
	if err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !back.Equal(v) {
		t.Error("exported JSON does not parse back to the same value")
	}
}

func TestJSONLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exporter := &JSONLExporter{}

	if err := exporter.Export(mustParse(t, "{ \"a\" : 1,\n \"b\": [ true , null ] }"), &buf); err != nil {
		t.Fatalf("JSONLExporter.Export() error = %v", err)
	}
	if err := exporter.Export(mustParse(t, `[1,2]`), &buf); err != nil {
		t.Fatalf("JSONLExporter.Export() error = %v", err)
	}

	want := testutil.SampleJSON + "\n[1,2]\n"
	if buf.String() != want {
		t.Errorf("JSONLExporter output = %q, want %q", buf.String(), want)
	}
}

func TestBlueprintExporter_Export(t *testing.T) {
	v := mustParse(t, testutil.BeltJSON)

	var buf bytes.Buffer
	if err := (&BlueprintExporter{}).Export(v, &buf); err != nil {
		t.Fatalf("BlueprintExporter.Export() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "0") || !strings.HasSuffix(out, "\n") {
		t.Errorf("unexpected blob output %q", out)
	}

	back, err := internal.Decode(out)
	if err != nil {
		t.Fatalf("exported blob does not decode: %v", err)
	}
	if !back.Equal(v) {
		t.Error("exported blob does not decode to the same value")
	}
}
