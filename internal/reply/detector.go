// Package reply builds localized concierge responses for resolved intents.
package reply

import (
	"github.com/pemistahl/lingua-go"
)

// FallbackLanguage is used when detection fails or yields an unsupported language.
const FallbackLanguage = "pt"

var supportedLanguages = []lingua.Language{
	lingua.Portuguese,
	lingua.English,
	lingua.Spanish,
	lingua.German,
	lingua.French,
}

var languageCodes = map[lingua.Language]string{
	lingua.Portuguese: "pt",
	lingua.English:    "en",
	lingua.Spanish:    "es",
	lingua.German:     "de",
	lingua.French:     "fr",
}

// Detector identifies the language of a query among the supported set.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector restricted to the languages we have templates for.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(supportedLanguages...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the detected language, or
// FallbackLanguage when the text gives no reliable signal.
func (d *Detector) Detect(text string) string {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return FallbackLanguage
	}
	code, ok := languageCodes[lang]
	if !ok {
		return FallbackLanguage
	}
	return code
}
