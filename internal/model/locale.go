package model

// Locale selects the language used for AI suggestions and their fallback
// messages. It has no effect on how submitted code is evaluated.
type Locale string

const (
	LocaleArabic Locale = "ar"
	LocaleFrench Locale = "fr"
)

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	return l == LocaleArabic || l == LocaleFrench
}
