// Package i18n holds the static English and Spanish string tables.
package i18n

import (
	"golang.org/x/text/language"
)

// Language is a supported UI language.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// Default is used whenever a request does not name a supported language.
const Default = Spanish

var tables = map[Language]map[Key]string{
	English: english,
	Spanish: spanish,
}

// Order matters: the first tag is the matcher's fallback.
var matcher = language.NewMatcher([]language.Tag{
	language.Spanish,
	language.English,
})

// Languages returns the supported languages, default first.
func Languages() []Language {
	return []Language{Spanish, English}
}

// Parse returns the supported language for a tag such as "en-US", or false.
func Parse(s string) (Language, bool) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	lang := Language(base.String())
	if _, ok := tables[lang]; !ok {
		return "", false
	}
	return lang, true
}

// Match negotiates an Accept-Language header against the supported languages.
// Anything unparseable or unsupported yields fallback.
func Match(acceptLanguage string, fallback Language) Language {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	if idx == 1 {
		return English
	}
	return Spanish
}

// T returns the string for key in lang. Unknown languages use Default;
// unknown keys return the key itself.
func T(lang Language, key Key) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[Default]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return string(key)
}

// Table returns a copy of the full table for lang.
func Table(lang Language) map[Key]string {
	table, ok := tables[lang]
	if !ok {
		table = tables[Default]
	}
	out := make(map[Key]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// Toggle switches between the two supported languages.
func Toggle(lang Language) Language {
	if lang == Spanish {
		return English
	}
	return Spanish
}

var categoryKeys = map[string]Key{
	"food":          CategoryFood,
	"retail":        CategoryRetail,
	"services":      CategoryServices,
	"entertainment": CategoryEntertainment,
	"other":         CategoryOther,
}

// CategoryName returns the localized display name of a business category.
// Unknown categories are shown as "other".
func CategoryName(lang Language, category string) string {
	key, ok := categoryKeys[category]
	if !ok {
		key = CategoryOther
	}
	return T(lang, key)
}
