// Package i18n negotiates the interface language and holds the user-facing
// messages for the supported languages.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	French  = "fr"
	English = "en"
	Arabic  = "ar"

	Default = French
)

// Supported lists the interface languages, default first.
var Supported = []string{French, English, Arabic}

var matcher = language.NewMatcher([]language.Tag{
	language.French,
	language.English,
	language.Arabic,
})

// Negotiate picks the best supported language for an Accept-Language
// header value. Anything unparsable yields Default.
func Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// Normalize reports whether lang names a supported language and returns
// its canonical form.
func Normalize(lang string) (string, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, s := range Supported {
		if lang == s {
			return s, true
		}
	}
	return "", false
}

// Region returns the ISO country of the first Accept-Language tag that
// names one explicitly, as in "en-CA".
func Region(acceptLanguage string) (string, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return "", false
	}
	for _, t := range tags {
		r, conf := t.Region()
		if conf != language.Exact || !r.IsCountry() {
			continue
		}
		return r.String(), true
	}
	return "", false
}
