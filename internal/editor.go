package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// NoticeLevel is the severity of a Notice
type NoticeLevel int

const (
	NoticeNone NoticeLevel = iota
	NoticeInfo
	NoticeSuccess
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "info"
	case NoticeSuccess:
		return "success"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "none"
	}
}

// Notice is the user-facing outcome of an Editor action. Key is the
// message key, Text the translated message with any detail appended.
type Notice struct {
	Level NoticeLevel
	Key   string
	Text  string
}

// IsZero reports whether there is nothing to show
func (n Notice) IsZero() bool {
	return n.Level == NoticeNone
}

// EditorConfig holds the collaborators of an Editor
type EditorConfig struct {
	// Store persists history and language. nil keeps both in memory.
	Store      KVStore
	Translator *Translator
	Clipboard  Clipboard
	MaxHistory int
}

// Editor ties the codec, history, text buffer and search together into
// the actions of a blueprint editing session. Not safe for concurrent use.
type Editor struct {
	kv      KVStore
	history *HistoryStore
	doc     *Document
	engine  *SearchEngine
	search  SearchState
	value   Value
	preview string
	tr      *Translator
	clip    Clipboard
}

// NewEditor creates an Editor, loading history and the saved language
// from the store
func NewEditor(cfg EditorConfig) *Editor {
	tr := cfg.Translator
	if tr == nil {
		var err error
		if tr, err = NewTranslator(); err != nil {
			LogWarn("Failed to load translations: %v", err)
			tr = NewTranslatorFromDictionaries(nil, FallbackLanguage)
		}
	}
	clip := cfg.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}

	doc := NewDocument("")
	e := &Editor{
		kv:      cfg.Store,
		history: NewHistoryStore(cfg.Store, WithMaxItems(cfg.MaxHistory)),
		doc:     doc,
		engine:  NewSearchEngine(doc),
		tr:      tr,
		clip:    clip,
	}
	e.history.Load()
	e.restoreLanguage()
	return e
}

// Decode records input in history and then decodes it into the buffer.
// The blob is recorded even when it turns out to be malformed.
func (e *Editor) Decode(input string) Notice {
	return e.decode(input, true)
}

// Open decodes input into the buffer without recording it in history
func (e *Editor) Open(input string) Notice {
	return e.decode(input, false)
}

func (e *Editor) decode(input string, record bool) Notice {
	blob := strings.TrimSpace(input)
	if blob == "" {
		return e.notice(NoticeWarning, "enterBlueprint", "")
	}

	if record {
		e.history.Add(blob)
	}

	v, err := Decode(blob)
	if err != nil {
		LogDebug("Decode failed: %v", err)
		return e.notice(NoticeError, "decodeFailed", err.Error())
	}

	if err := e.load(v); err != nil {
		return e.notice(NoticeError, "encodingError", err.Error())
	}
	return e.notice(NoticeSuccess, "decodeDone", "")
}

// Encode parses the buffer text, encodes it into the preview and
// reformats the buffer
func (e *Editor) Encode() Notice {
	v, blob, err := EncodeText(e.doc.Text())
	if err != nil {
		var empty *EmptyInputError
		if errors.As(err, &empty) {
			return e.notice(NoticeWarning, "jsonEditorEmpty", "")
		}
		return e.notice(NoticeError, "encodeError", err.Error())
	}

	e.show(v, blob)
	return e.notice(NoticeSuccess, "encodeDone", "")
}

// Restore decodes the history entry at index
func (e *Editor) Restore(index int) Notice {
	entry, ok := e.history.Get(index)
	if !ok {
		return e.notice(NoticeWarning, "historyMissing", fmt.Sprintf("#%d", index+1))
	}
	return e.Decode(entry.Blob)
}

// Search starts a new search from the top of the buffer
func (e *Editor) Search(query string) Notice {
	st, err := e.engine.Submit(query)
	e.search = st
	return e.searchNotice(err)
}

// FindNext moves to the next match of the active search
func (e *Editor) FindNext() Notice {
	st, err := e.engine.FindNext(e.search)
	e.search = st
	return e.searchNotice(err)
}

// FindPrevious moves to the previous match of the active search
func (e *Editor) FindPrevious() Notice {
	st, err := e.engine.FindPrevious(e.search)
	e.search = st
	return e.searchNotice(err)
}

// CountMatches highlights every occurrence of query and returns the count
func (e *Editor) CountMatches(query string) int {
	return e.engine.Highlight(query)
}

// ReplaceAll replaces every literal occurrence of find in the buffer. The
// search cursor is left as it was.
func (e *Editor) ReplaceAll(find, with string) Notice {
	count, err := e.engine.ReplaceAll(find, with)
	if err != nil {
		var empty *EmptyInputError
		if errors.As(err, &empty) {
			return e.notice(NoticeWarning, "replaceEnterText", "")
		}
		return e.notice(NoticeWarning, "replaceNotFound", "")
	}

	e.doc.ClearMarks()
	return e.notice(NoticeSuccess, "replaceDone", fmt.Sprintf("(%d)", count))
}

// Set replaces the value at a gjson path with raw JSON and re-encodes
func (e *Editor) Set(path, raw string) Notice {
	if strings.TrimSpace(path) == "" {
		return e.notice(NoticeWarning, "setFailed", "empty path")
	}
	if !gjson.Valid(raw) {
		return e.notice(NoticeError, "setFailed", fmt.Sprintf("invalid JSON value %q", raw))
	}

	text := e.doc.Text()
	if strings.TrimSpace(text) == "" {
		text = "{}"
	}
	updated, err := sjson.SetRaw(text, path, raw)
	if err != nil {
		return e.notice(NoticeError, "setFailed", err.Error())
	}

	v, blob, err := EncodeText(updated)
	if err != nil {
		return e.notice(NoticeError, "setFailed", err.Error())
	}
	e.show(v, blob)
	return e.notice(NoticeSuccess, "setDone", path)
}

// Query returns the raw JSON at a gjson path of the buffer
func (e *Editor) Query(path string) (string, bool) {
	r := gjson.Get(e.doc.Text(), path)
	if !r.Exists() {
		return "", false
	}
	return r.Raw, true
}

// Copy writes the encoded preview to the clipboard. An empty preview is
// a no-op.
func (e *Editor) Copy() Notice {
	if e.preview == "" {
		return Notice{}
	}
	if err := e.clip.WriteText(e.preview); err != nil {
		return e.notice(NoticeError, "clipboardFailed", err.Error())
	}
	return e.notice(NoticeSuccess, "copied", "")
}

// ClearHistory forgets every recorded blob
func (e *Editor) ClearHistory() Notice {
	e.history.Clear()
	return e.notice(NoticeSuccess, "historyCleared", "")
}

// SetLanguage switches the display language and remembers it
func (e *Editor) SetLanguage(code string) Notice {
	code = strings.ToLower(strings.TrimSpace(code))
	if !e.tr.SetLanguage(code) {
		matched, ok := e.tr.MatchLanguage(code)
		if !ok || !e.tr.SetLanguage(matched) {
			return e.notice(NoticeWarning, "languageUnknown", code)
		}
		code = matched
	}

	if e.kv != nil {
		if err := e.kv.Set(LanguageStorageKey, code); err != nil {
			LogWarn("Failed to save language: %v", err)
		}
	}
	return e.notice(NoticeSuccess, "languageChanged", e.tr.Label())
}

func (e *Editor) restoreLanguage() {
	if e.kv == nil {
		return
	}
	code, ok, err := e.kv.Get(LanguageStorageKey)
	if err != nil {
		LogWarn("Language storage not available: %v", err)
		return
	}
	if ok && code != "" && !e.tr.SetLanguage(code) {
		LogDebug("Ignoring saved language %q", code)
	}
}

// SetText replaces the buffer text. An active search stays active and
// continues from its last position, clipped to the new text.
func (e *Editor) SetText(text string) {
	e.doc.SetText(text)
}

// Text returns the buffer text
func (e *Editor) Text() string { return e.doc.Text() }

// Preview returns the most recently encoded blob
func (e *Editor) Preview() string { return e.preview }

// Value returns the most recently decoded or encoded value
func (e *Editor) Value() Value { return e.value }

// Document returns the text buffer
func (e *Editor) Document() *Document { return e.doc }

// History returns the history store
func (e *Editor) History() *HistoryStore { return e.history }

// Translator returns the active translator
func (e *Editor) Translator() *Translator { return e.tr }

// SearchState returns the current search cursor
func (e *Editor) SearchState() SearchState { return e.search }

// T translates key with the active language
func (e *Editor) T(key string) string { return e.tr.T(key) }

// load shows v and encodes it into the preview
func (e *Editor) load(v Value) error {
	blob, err := Encode(v)
	if err != nil {
		e.show(v, "")
		return err
	}
	e.show(v, blob)
	return nil
}

func (e *Editor) show(v Value, blob string) {
	e.value = v
	e.preview = blob
	e.SetText(v.Pretty())
}

func (e *Editor) searchNotice(err error) Notice {
	if err == nil {
		return Notice{}
	}
	var noMatch *NoMatchError
	if errors.As(err, &noMatch) {
		return e.notice(NoticeWarning, "matchesNotFound", "")
	}
	return e.notice(NoticeError, "matchesNotFound", err.Error())
}

func (e *Editor) notice(level NoticeLevel, key, detail string) Notice {
	text := e.tr.T(key)
	if detail != "" {
		text += " " + detail
	}
	return Notice{Level: level, Key: key, Text: text}
}
