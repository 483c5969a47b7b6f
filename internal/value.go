package internal

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Kind identifies the variant held by a Value
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object, in document order
type Member struct {
	Key   string
	Value Value
}

// Value is the decoded, editable form of a blueprint: a JSON tree whose
// objects keep their keys in insertion order. Numbers keep their literal
// text so that a decode/encode cycle never reformats them.
// The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents, or the canonical number literal
	items   []Value
	members []Member
}

// Null returns the null value
func Null() Value { return Value{} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Number returns a number value from its JSON literal, e.g. "1", "-2.5e3".
// The literal is rewritten the way JavaScript prints numbers, so "1.0"
// becomes "1" and "1E5" becomes "100000". A literal too large for a double
// becomes null. Text that is not a number is kept as given.
func Number(raw string) Value {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{kind: KindNumber, text: raw}
	}
	if math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, text: formatNumber(f)}
}

// formatNumber renders f like JavaScript's Number#toString: plain decimals
// for magnitudes in [1e-6, 1e21), shortest exponent form otherwise.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// String returns a string value
func String(s string) Value { return Value{kind: KindString, text: s} }

// Array returns an array value holding items in order
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns an object value. A repeated key keeps its first position
// and takes the last value, as JSON.parse does.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Kind returns the variant of v
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean held by v
func (v Value) Bool() bool { return v.boolean }

// Str returns the string held by v
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Raw returns the canonical literal of a number
func (v Value) Raw() string {
	if v.kind != KindNumber {
		return ""
	}
	return v.text
}

// Items returns the elements of an array
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object in order
func (v Value) Members() []Member { return v.members }

// Len returns the number of elements or members, 0 for scalars
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Get looks up a key of an object
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports deep equality. Object members must appear in the same
// order; numbers compare by their literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != other.members[i].Key || !v.members[i].Value.Equal(other.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// ParseValue parses JSON text into a Value. Failures are reported as a
// DecodeError at the parse stage.
func ParseValue(text string) (Value, error) {
	if !utf8.ValidString(text) {
		return Value{}, &DecodeError{Stage: StageParse, Err: errors.New("text is not valid UTF-8")}
	}
	if strings.TrimSpace(text) == "" {
		return Value{}, &DecodeError{Stage: StageParse, Err: errors.New("unexpected end of JSON input")}
	}
	if !gjson.Valid(text) {
		return Value{}, &DecodeError{Stage: StageParse, Err: errors.New("text is not well-formed JSON")}
	}
	return fromResult(gjson.Parse(text)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Raw)
	case gjson.String:
		return String(r.Str)
	}

	if r.IsArray() {
		items := make([]Value, 0)
		r.ForEach(func(_, item gjson.Result) bool {
			items = append(items, fromResult(item))
			return true
		})
		return Array(items...)
	}

	var members []Member
	r.ForEach(func(key, item gjson.Result) bool {
		members = append(members, Member{Key: key.Str, Value: fromResult(item)})
		return true
	})
	return Object(members...)
}

// Compact renders v as JSON without insignificant whitespace
func (v Value) Compact() string {
	var b strings.Builder
	v.write(&b, "", "")
	return b.String()
}

// Pretty renders v as JSON indented by two spaces per level
func (v Value) Pretty() string {
	var b strings.Builder
	v.write(&b, "  ", "")
	return b.String()
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.Compact()), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) write(b *strings.Builder, indent, prefix string) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.boolean {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(v.text)
	case KindString:
		writeQuoted(b, v.text)
	case KindArray:
		if len(v.items) == 0 {
			b.WriteString("[]")
			return
		}
		inner := prefix + indent
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, inner)
			item.write(b, indent, inner)
		}
		newline(b, indent, prefix)
		b.WriteByte(']')
	case KindObject:
		if len(v.members) == 0 {
			b.WriteString("{}")
			return
		}
		inner := prefix + indent
		b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				b.WriteByte(',')
			}
			newline(b, indent, inner)
			writeQuoted(b, m.Key)
			b.WriteByte(':')
			if indent != "" {
				b.WriteByte(' ')
			}
			m.Value.write(b, indent, inner)
		}
		newline(b, indent, prefix)
		b.WriteByte('}')
	}
}

func newline(b *strings.Builder, indent, prefix string) {
	if indent == "" {
		return
	}
	b.WriteByte('\n')
	b.WriteString(prefix)
}

const hexDigits = "0123456789abcdef"

// writeQuoted escapes like JSON.stringify: quotes, backslashes and control
// characters only; HTML characters are left alone.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[r>>4])
				b.WriteByte(hexDigits[r&0xF])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
