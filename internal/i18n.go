package internal

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FallbackLanguage is active until another language is chosen and is
// consulted when the active dictionary lacks a key
const FallbackLanguage = "ru"

//go:embed locales/*.yaml
var localeFS embed.FS

// Dictionary holds the display strings of one language
type Dictionary struct {
	Label    string            `yaml:"label"`
	Messages map[string]string `yaml:"messages"`
}

// LanguageInfo describes an available language
type LanguageInfo struct {
	Code  string
	Label string
}

// Translator maps message keys to display strings. Lookups try the active
// language, then the fallback language, then return the key itself.
type Translator struct {
	dicts    map[string]Dictionary
	codes    []string
	active   string
	fallback string
	matcher  language.Matcher
}

// NewTranslator loads the bundled dictionaries
func NewTranslator() (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	dicts := make(map[string]Dictionary, len(entries))
	for _, entry := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", entry.Name(), err)
		}
		var dict Dictionary
		if err := yaml.Unmarshal(data, &dict); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", entry.Name(), err)
		}
		dicts[strings.TrimSuffix(entry.Name(), ".yaml")] = dict
	}

	return NewTranslatorFromDictionaries(dicts, FallbackLanguage), nil
}

// NewTranslatorFromDictionaries builds a Translator from explicit
// dictionaries. The fallback language starts out active.
func NewTranslatorFromDictionaries(dicts map[string]Dictionary, fallback string) *Translator {
	codes := make([]string, 0, len(dicts))
	for code := range dicts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	// the matcher prefers its first tag when nothing fits
	tags := make([]language.Tag, 0, len(codes))
	ordered := make([]string, 0, len(codes))
	if _, ok := dicts[fallback]; ok {
		tags = append(tags, language.Make(fallback))
		ordered = append(ordered, fallback)
	}
	for _, code := range codes {
		if code == fallback {
			continue
		}
		tags = append(tags, language.Make(code))
		ordered = append(ordered, code)
	}

	return &Translator{
		dicts:    dicts,
		codes:    ordered,
		active:   fallback,
		fallback: fallback,
		matcher:  language.NewMatcher(tags),
	}
}

// T translates key
func (t *Translator) T(key string) string {
	if msg, ok := t.dicts[t.active].Messages[key]; ok && msg != "" {
		return msg
	}
	if msg, ok := t.dicts[t.fallback].Messages[key]; ok && msg != "" {
		return msg
	}
	return key
}

// Language returns the active language code
func (t *Translator) Language() string {
	return t.active
}

// Label returns the native name of the active language
func (t *Translator) Label() string {
	if label := t.dicts[t.active].Label; label != "" {
		return label
	}
	return strings.ToUpper(t.active)
}

// SetLanguage switches to code if a dictionary exists for it
func (t *Translator) SetLanguage(code string) bool {
	if _, ok := t.dicts[code]; !ok {
		return false
	}
	t.active = code
	return true
}

// MatchLanguage resolves a locale such as "de_DE.UTF-8" or "uk-UA" to the
// closest available language code.
func (t *Translator) MatchLanguage(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "", false
	}
	_, index, confidence := t.matcher.Match(tag)
	if confidence == language.No || index >= len(t.codes) {
		return "", false
	}
	return t.codes[index], true
}

// Languages lists the available languages, fallback first
func (t *Translator) Languages() []LanguageInfo {
	out := make([]LanguageInfo, 0, len(t.codes))
	for _, code := range t.codes {
		out = append(out, LanguageInfo{Code: code, Label: t.dicts[code].Label})
	}
	return out
}
