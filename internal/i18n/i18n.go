// Package i18n resolves UI strings from embedded locale tables. Turkish is
// the default language; a key missing from the active table falls back to
// English, and a key missing everywhere renders as the key itself so the UI
// never blanks out.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	DefaultLanguage  = "tr"
	FallbackLanguage = "en"
)

// Translator is shared across goroutines; the active language is the only
// mutable part and sits behind a read lock. The tables never change after New.
type Translator struct {
	mu       sync.RWMutex
	language string
	tables   map[string]map[string]string
}

// New loads every embedded locale table. Unknown languages fall back to the
// default at lookup time.
func New(language string) (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	tables := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		raw, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		table := map[string]string{}
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		tables[name] = table
	}
	if _, ok := tables[language]; !ok {
		language = DefaultLanguage
	}
	return &Translator{language: language, tables: tables}, nil
}

func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.language
}

// SetLanguage switches the active table; unknown languages are ignored.
func (t *Translator) SetLanguage(language string) {
	if _, ok := t.tables[language]; !ok {
		return
	}
	t.mu.Lock()
	t.language = language
	t.mu.Unlock()
}

// Languages lists the available locale codes.
func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.tables))
	for lang := range t.tables {
		out = append(out, lang)
	}
	return out
}

// T resolves key in the active language, substituting {name} placeholders
// from params.
func (t *Translator) T(key string, params ...map[string]any) string {
	t.mu.RLock()
	language := t.language
	t.mu.RUnlock()
	text, ok := t.tables[language][key]
	if !ok {
		text, ok = t.tables[FallbackLanguage][key]
	}
	if !ok {
		return key
	}
	if len(params) == 0 {
		return text
	}
	for name, value := range params[0] {
		text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(value))
	}
	return text
}
