package internal

// Format identifies the compression/encoding convention of a blob. The
// first symbol of a blob is its tag; new conventions add a variant here.
type Format int

const (
	// FormatLegacyUntagged is a blob with no recognised tag; the whole
	// string is the base64 payload.
	FormatLegacyUntagged Format = iota
	// FormatDeflateBase64V0 is tag "0": base64 of a deflate stream of
	// UTF-8 JSON text.
	FormatDeflateBase64V0
)

// CurrentFormat is the format every new blob is written in
const CurrentFormat = FormatDeflateBase64V0

// DetectFormat reports the format of a (trimmed) blob
func DetectFormat(blob string) Format {
	if len(blob) > 0 && blob[0] == '0' {
		return FormatDeflateBase64V0
	}
	return FormatLegacyUntagged
}

// Tag returns the prefix written for this format
func (f Format) Tag() string {
	switch f {
	case FormatDeflateBase64V0:
		return "0"
	default:
		return ""
	}
}

// Payload strips the tag of this format from blob
func (f Format) Payload(blob string) string {
	return blob[len(f.Tag()):]
}

func (f Format) String() string {
	switch f {
	case FormatLegacyUntagged:
		return "legacy-untagged"
	case FormatDeflateBase64V0:
		return "deflate-base64-v0"
	default:
		return "unknown"
	}
}
