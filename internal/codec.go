package internal

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/tidwall/gjson"
)

// Decode turns a blueprint blob into its structured value.
// Surrounding whitespace is ignored; a leading "0" tag is stripped and an
// untagged blob is read as a bare payload.
func Decode(blob string) (Value, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return Value{}, &EmptyInputError{Field: "blueprint"}
	}

	format := DetectFormat(blob)
	LogDebug("Decoding %d byte blob as %s", len(blob), format)

	compressed, err := decodeBase64(format.Payload(blob))
	if err != nil {
		return Value{}, &DecodeError{Stage: StageBase64, Err: err}
	}

	raw, err := inflate(compressed)
	if err != nil {
		return Value{}, &DecodeError{Stage: StageInflate, Err: err}
	}
	if !utf8.Valid(raw) {
		return Value{}, &DecodeError{Stage: StageInflate, Err: errors.New("decompressed data is not valid UTF-8")}
	}

	return ParseValue(string(raw))
}

// Encode turns a structured value into a tagged blueprint blob
func Encode(v Value) (string, error) {
	text := v.Compact()
	if !gjson.Valid(text) {
		return "", &EncodeError{Err: errors.New("value does not serialize to well-formed JSON")}
	}

	compressed, err := deflate([]byte(text))
	if err != nil {
		return "", &EncodeError{Err: err}
	}

	return CurrentFormat.Tag() + base64.StdEncoding.EncodeToString(compressed), nil
}

// EncodeText parses user-edited JSON text and encodes it. Text that does
// not parse is reported as an EncodeError wrapping the parse failure.
func EncodeText(text string) (Value, string, error) {
	if strings.TrimSpace(text) == "" {
		return Value{}, "", &EmptyInputError{Field: "json"}
	}

	v, err := ParseValue(text)
	if err != nil {
		return Value{}, "", &EncodeError{Err: err}
	}

	blob, err := Encode(v)
	if err != nil {
		return Value{}, "", err
	}
	return v, blob, nil
}

// decodeBase64 is as forgiving as the browser's atob: ASCII whitespace is
// dropped and trailing padding may be omitted.
func decodeBase64(payload string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, payload)

	if len(cleaned)%4 == 0 {
		cleaned = strings.TrimSuffix(cleaned, "=")
		cleaned = strings.TrimSuffix(cleaned, "=")
	}
	if len(cleaned)%4 == 1 {
		return nil, fmt.Errorf("invalid base64 length %d", len(cleaned))
	}

	data, err := base64.RawStdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty payload")
	}
	return data, nil
}

// inflate accepts both zlib-framed and raw deflate streams
func inflate(data []byte) ([]byte, error) {
	if hasZlibHeader(data) {
		out, err := readAll(zlib.NewReader(bytes.NewReader(data)))
		if err == nil {
			return out, nil
		}
		LogDebug("zlib inflate failed, retrying as raw deflate: %v", err)
		if raw, rawErr := readAll(flate.NewReader(bytes.NewReader(data)), nil); rawErr == nil {
			return raw, nil
		}
		return nil, err
	}
	return readAll(flate.NewReader(bytes.NewReader(data)), nil)
}

func readAll(r io.ReadCloser, openErr error) ([]byte, error) {
	if openErr != nil {
		return nil, openErr
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("compressed stream is truncated")
		}
		return nil, err
	}
	return out, nil
}

func hasZlibHeader(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	cmf, flg := data[0], data[1]
	return cmf&0x0F == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
