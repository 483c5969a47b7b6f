package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestEmptyInputError(t *testing.T) {
	err := &EmptyInputError{Field: "blueprint"}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "empty input") {
		t.Errorf("EmptyInputError.Error() should contain 'empty input', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "blueprint") {
		t.Errorf("EmptyInputError.Error() should contain field, got: %q", errorMsg)
	}
}

func TestDecodeError(t *testing.T) {
	originalErr := errors.New("illegal base64 data")
	err := &DecodeError{
		Stage: StageBase64,
		Err:   originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "decode error") {
		t.Errorf("DecodeError.Error() should contain 'decode error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "base64") {
		t.Errorf("DecodeError.Error() should contain stage, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("DecodeError.Unwrap() should return original error")
	}
}

func TestEncodeError(t *testing.T) {
	inner := &DecodeError{Stage: StageParse, Err: errors.New("invalid json")}
	err := &EncodeError{Err: inner}

	if !strings.Contains(err.Error(), "encode error") {
		t.Errorf("EncodeError.Error() should contain 'encode error', got: %q", err.Error())
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatal("EncodeError should unwrap to DecodeError")
	}
	if decodeErr.Stage != StageParse {
		t.Errorf("unwrapped stage = %q, want %q", decodeErr.Stage, StageParse)
	}
}

func TestNoMatchError(t *testing.T) {
	err := &NoMatchError{Query: "zzz"}
	if !strings.Contains(err.Error(), "zzz") {
		t.Errorf("NoMatchError.Error() should contain query, got: %q", err.Error())
	}
}

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Path: "/test/path",
		Op:   "open",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/test/path") {
		t.Errorf("StorageError.Error() should contain path, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{
		Format: "yaml",
		Path:   "/output/blueprint.yaml",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "yaml") {
		t.Errorf("ExportError.Error() should contain format, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}
