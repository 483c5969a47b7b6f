package internal

import (
	"errors"
	"strings"
	"testing"
)

// Blobs produced by zlib/deflate outside of this package, covering the
// encodings found in the wild.
const (
	zlibTaggedBlob  = "0eJyrVkpUsjLUUUpSsoouKSpN1ckrzcmJrQUATzoHdA=="
	rawUntaggedBlob = "q1ZKVLIy1FFKUrKKLikqTdXJK83Jia0FAA=="
	rawTaggedBlob   = "0q1ZKVLIy1FFKUrKKLikqTdXJK83Jia0FAA=="
	notJSONBlob     = "0eJzLyy9RyCrOzwMADiYDLA=="
	truncatedBlob   = "0eJyrVkpUsjI="
)

func sampleValue() Value {
	return Object(
		Member{Key: "a", Value: Number("1")},
		Member{Key: "b", Value: Array(Bool(true), Null())},
	)
}

func TestDecode_KnownBlobs(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "zlib tagged", blob: zlibTaggedBlob},
		{name: "raw deflate untagged", blob: rawUntaggedBlob},
		{name: "raw deflate tagged", blob: rawTaggedBlob},
		{name: "surrounding whitespace", blob: "  \n" + zlibTaggedBlob + "\t "},
		{name: "missing padding", blob: strings.TrimRight(zlibTaggedBlob, "=")},
		{name: "wrapped lines", blob: zlibTaggedBlob[:20] + "\n" + zlibTaggedBlob[20:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.blob)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !got.Equal(sampleValue()) {
				t.Errorf("Decode() = %s, want %s", got.Compact(), sampleValue().Compact())
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name      string
		blob      string
		wantEmpty bool
		wantStage DecodeStage
	}{
		{name: "empty", blob: "", wantEmpty: true},
		{name: "whitespace only", blob: "   ", wantEmpty: true},
		{name: "bad base64", blob: "0!!!not-base64!!!", wantStage: StageBase64},
		{name: "bad base64 length", blob: "0abcde", wantStage: StageBase64},
		{name: "tag only", blob: "0", wantStage: StageBase64},
		{name: "not compressed", blob: "0aGVsbG8gd29ybGQ=", wantStage: StageInflate},
		{name: "truncated stream", blob: truncatedBlob, wantStage: StageInflate},
		{name: "not json", blob: notJSONBlob, wantStage: StageParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.blob)
			if err == nil {
				t.Fatal("Decode() expected error")
			}

			if tt.wantEmpty {
				var emptyErr *EmptyInputError
				if !errors.As(err, &emptyErr) {
					t.Errorf("Decode() error = %T, want *EmptyInputError", err)
				}
				return
			}

			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("Decode() error = %T (%v), want *DecodeError", err, err)
			}
			if decodeErr.Stage != tt.wantStage {
				t.Errorf("Decode() stage = %q, want %q (%v)", decodeErr.Stage, tt.wantStage, err)
			}
		})
	}
}

func TestEncode_Tagged(t *testing.T) {
	values := []Value{
		sampleValue(),
		Null(),
		String(""),
		Array(),
		Object(),
		Number("-12.5e3"),
	}

	for _, v := range values {
		blob, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", v.Compact(), err)
		}
		if !strings.HasPrefix(blob, "0") {
			t.Errorf("Encode(%s) = %q, want prefix \"0\"", v.Compact(), blob)
		}
		if DetectFormat(blob) != FormatDeflateBase64V0 {
			t.Errorf("DetectFormat(%q) = %s", blob, DetectFormat(blob))
		}
	}
}

func TestEncode_InvalidNumber(t *testing.T) {
	_, err := Encode(Object(Member{Key: "n", Value: Number("1.2.3")}))
	var encodeErr *EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("Encode() error = %v, want *EncodeError", err)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		sampleValue(),
		Object(
			Member{Key: "z", Value: String("last key first")},
			Member{Key: "a", Value: Object(
				Member{Key: "nested", Value: Array(Array(), Object(), Number("0"))},
				Member{Key: "unicode", Value: String("привет, 世界   <tag> & \"q\"\n")},
			)},
			Member{Key: "m", Value: Number("3.14159")},
			Member{Key: "f", Value: Bool(false)},
		),
		Array(String("a"), Number("1e21"), Null(), Bool(true)),
		String("\x01control\x1f"),
	}

	for _, v := range values {
		blob, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		got, err := Decode(blob)
		if err != nil {
			t.Fatalf("Decode(Encode()) error = %v", err)
		}
		if !got.Equal(v) {
			t.Errorf("Decode(Encode(v)) = %s, want %s", got.Compact(), v.Compact())
		}
	}
}

func TestDecodeEncodeIdempotent(t *testing.T) {
	first, err := Decode(zlibTaggedBlob)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	current := first
	for i := 0; i < 5; i++ {
		blob, err := Encode(current)
		if err != nil {
			t.Fatalf("iteration %d: Encode() error = %v", i, err)
		}
		current, err = Decode(blob)
		if err != nil {
			t.Fatalf("iteration %d: Decode() error = %v", i, err)
		}
		if !current.Equal(first) {
			t.Fatalf("iteration %d: value drifted to %s", i, current.Compact())
		}
	}
}

func TestEncodeText(t *testing.T) {
	t.Run("valid text", func(t *testing.T) {
		v, blob, err := EncodeText("{\n  \"a\": 1,\n  \"b\": [true, null]\n}")
		if err != nil {
			t.Fatalf("EncodeText() error = %v", err)
		}
		if !v.Equal(sampleValue()) {
			t.Errorf("EncodeText() value = %s", v.Compact())
		}
		decoded, err := Decode(blob)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if !decoded.Equal(sampleValue()) {
			t.Errorf("Decode(EncodeText()) = %s", decoded.Compact())
		}
	})

	t.Run("empty text", func(t *testing.T) {
		_, _, err := EncodeText("  \n ")
		var emptyErr *EmptyInputError
		if !errors.As(err, &emptyErr) {
			t.Errorf("EncodeText() error = %v, want *EmptyInputError", err)
		}
	})

	t.Run("malformed text", func(t *testing.T) {
		_, _, err := EncodeText(`{"a": 1,}`)
		var encodeErr *EncodeError
		if !errors.As(err, &encodeErr) {
			t.Fatalf("EncodeText() error = %v, want *EncodeError", err)
		}
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) || decodeErr.Stage != StageParse {
			t.Errorf("EncodeText() should wrap a parse-stage DecodeError, got %v", err)
		}
	})
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		blob    string
		want    Format
		payload string
	}{
		{blob: "0abc", want: FormatDeflateBase64V0, payload: "abc"},
		{blob: "abc", want: FormatLegacyUntagged, payload: "abc"},
		{blob: "", want: FormatLegacyUntagged, payload: ""},
	}

	for _, tt := range tests {
		got := DetectFormat(tt.blob)
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %s, want %s", tt.blob, got, tt.want)
		}
		if p := got.Payload(tt.blob); p != tt.payload {
			t.Errorf("Payload(%q) = %q, want %q", tt.blob, p, tt.payload)
		}
	}
}
