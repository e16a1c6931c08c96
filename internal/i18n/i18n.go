// Package i18n holds the fixed storefront chrome strings in every supported
// language. Administrator-edited copy lives in the settings row instead.
package i18n

import "github.com/mrlokans/storefront/internal/entities"

var messages = map[entities.Language]map[string]string{
	entities.LanguageEnglish: {
		"landing.collection.title":   "Explore Our Collection",
		"landing.hero.subtitle":      "Printed books, e-books and audiobooks in English and Tamil, all in one place.",
		"landing.printed.price":      "Affordable prices",
		"landing.printed.checkout":   "Easy checkout",
		"landing.printed.browse":     "Browse Books",
		"landing.ebooks.instant":     "Instant download",
		"landing.ebooks.formats":     "PDF and EPUB formats",
		"landing.ebooks.browse":      "Browse E-Books",
		"landing.audiobooks.free":    "Free to listen",
		"landing.audiobooks.quality": "High quality audio",
		"landing.audiobooks.browse":  "Browse Audiobooks",
		"landing.featured.curated":   "Curated by our team",
		"landing.featured.popular":   "Reader favourites",
		"landing.featured.browse":    "View Featured",
		"landing.why.title":          "Why Choose Us?",
		"landing.why.free.title":     "Free",
		"landing.stats.books":        "Books available",
		"landing.stats.free":         "Audiobooks and e-books",
		"landing.stats.access":       "Access anywhere",
		"featured.empty":             "No featured books yet.",
		"featured.by":                "by",
		"nav.home":                   "Home",
		"nav.language":               "தமிழ்",
	},
	entities.LanguageTamil: {
		"landing.collection.title":   "எங்கள் தொகுப்பை ஆராயுங்கள்",
		"landing.hero.subtitle":      "அச்சு புத்தகங்கள், மின் புத்தகங்கள், ஒலி புத்தகங்கள் அனைத்தும் ஒரே இடத்தில்.",
		"landing.printed.price":      "குறைந்த விலை",
		"landing.printed.checkout":   "எளிதான கட்டணம்",
		"landing.printed.browse":     "புத்தகங்களை பார்க்க",
		"landing.ebooks.instant":     "உடனடி பதிவிறக்கம்",
		"landing.ebooks.formats":     "PDF மற்றும் EPUB வடிவங்கள்",
		"landing.ebooks.browse":      "மின் புத்தகங்களை பார்க்க",
		"landing.audiobooks.free":    "இலவசமாக கேளுங்கள்",
		"landing.audiobooks.quality": "உயர்தர ஒலி",
		"landing.audiobooks.browse":  "ஒலி புத்தகங்களை பார்க்க",
		"landing.featured.curated":   "எங்கள் குழு தேர்ந்தெடுத்தது",
		"landing.featured.popular":   "வாசகர்களின் விருப்பம்",
		"landing.featured.browse":    "சிறப்பு நூல்களை பார்க்க",
		"landing.why.title":          "ஏன் எங்களை தேர்வு செய்ய வேண்டும்?",
		"landing.why.free.title":     "இலவசம்",
		"landing.stats.books":        "கிடைக்கும் புத்தகங்கள்",
		"landing.stats.free":         "ஒலி மற்றும் மின் புத்தகங்கள்",
		"landing.stats.access":       "எங்கும் அணுகலாம்",
		"featured.empty":             "இன்னும் சிறப்பு புத்தகங்கள் இல்லை.",
		"featured.by":                "எழுதியவர்",
		"nav.home":                   "முகப்பு",
		"nav.language":               "English",
	},
}

// T returns the string for key in lang. Missing translations fall back to
// English, then to the key itself.
func T(lang entities.Language, key string) string {
	if msg, ok := messages[lang][key]; ok {
		return msg
	}
	if msg, ok := messages[entities.LanguageEnglish][key]; ok {
		return msg
	}
	return key
}

// Translator binds T to one language, for templates.
func Translator(lang entities.Language) func(string) string {
	return func(key string) string {
		return T(lang, key)
	}
}

// Keys returns every key defined for lang.
func Keys(lang entities.Language) []string {
	keys := make([]string, 0, len(messages[lang]))
	for k := range messages[lang] {
		keys = append(keys, k)
	}
	return keys
}
