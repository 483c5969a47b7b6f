package internal

import "fmt"

// DecodeStage names the step of the decode pipeline that failed
type DecodeStage string

const (
	StageBase64  DecodeStage = "base64"
	StageInflate DecodeStage = "inflate"
	StageParse   DecodeStage = "parse"
)

// EmptyInputError is returned when the user submitted nothing to work on
type EmptyInputError struct {
	Field string // "blueprint", "json", "find"
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: %s", e.Field)
}

// DecodeError represents a failure at one stage of blob decoding
type DecodeError struct {
	Stage DecodeStage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error [%s]: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError represents a failure to serialize or compress a value
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode error: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// NoMatchError is returned when a search or replace found nothing
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match: %q", e.Query)
}

// StorageError represents errors accessing the persistence backend
type StorageError struct {
	Path string
	Op   string // "open", "get", "set", "remove"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
