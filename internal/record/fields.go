package record

// LanguageNone is the language key of untranslated field values.
const LanguageNone = "und"

// Item is one delta of a field: column name -> value.
type Item map[string]string

// Fields is field name -> language -> deltas.
type Fields map[string]map[string][]Item

// Value returns the column of the first delta of field in lang.
//
// When lang has no values the LanguageNone values are consulted. An empty
// lang is treated as LanguageNone.
func (f Fields) Value(field, lang, column string) (string, bool) {
	if f == nil {
		return "", false
	}
	byLang, ok := f[field]
	if !ok {
		return "", false
	}
	if lang == "" {
		lang = LanguageNone
	}
	items, ok := byLang[lang]
	if !ok || len(items) == 0 {
		items = byLang[LanguageNone]
	}
	if len(items) == 0 {
		return "", false
	}
	v, ok := items[0][column]
	return v, ok
}

// Set stores a single-delta value, replacing what was there for lang.
func (f Fields) Set(field, lang string, item Item) {
	if lang == "" {
		lang = LanguageNone
	}
	byLang, ok := f[field]
	if !ok {
		byLang = make(map[string][]Item)
		f[field] = byLang
	}
	byLang[lang] = []Item{item}
}
