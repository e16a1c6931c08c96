package entities

import "strings"

// Language is a storefront display language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageTamil   Language = "ta"
)

// SupportedLanguages lists the languages the storefront copy is maintained in.
var SupportedLanguages = []Language{LanguageEnglish, LanguageTamil}

// ParseLanguage normalises a language code, returning false for unsupported ones.
func ParseLanguage(code string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	for _, supported := range SupportedLanguages {
		if lang == supported {
			return lang, true
		}
	}
	return "", false
}

// Localized holds one piece of copy in every supported language.
type Localized struct {
	EN string `json:"en"`
	TA string `json:"ta"`
}

// In returns the copy for lang. Anything other than Tamil reads the English text.
func (l Localized) In(lang Language) string {
	if lang == LanguageTamil {
		return l.TA
	}
	return l.EN
}
