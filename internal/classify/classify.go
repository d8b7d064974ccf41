package classify

import (
	"regexp"
	"strings"
)

// Classifier runs the fixed-vocabulary checks against message text. All
// checks are case-insensitive substring or pattern matches; there is no
// tokenization or language analysis.
type Classifier struct {
	offTopic       []string
	excludedCities []string
}

func NewClassifier(offTopic, excludedCities []string) *Classifier {
	c := &Classifier{
		offTopic:       make([]string, 0, len(offTopic)),
		excludedCities: make([]string, 0, len(excludedCities)),
	}
	for _, kw := range offTopic {
		c.offTopic = append(c.offTopic, strings.ToLower(kw))
	}
	for _, city := range excludedCities {
		c.excludedCities = append(c.excludedCities, strings.ToLower(city))
	}
	return c
}

var (
	// A license/deed label followed by an optional separator and a digit run.
	labeledLicense = regexp.MustCompile(`(?i)(license|deed|fal|فال|رخصة|ترخيص|صك)\s*[:#\-]?\s*(\d{5,20})`)

	// Fallback: any bare 9-12 digit run. Loose on purpose; it also matches
	// unrelated numeric strings (phone numbers, IBAN fragments) of that
	// length. Tightening this would change which group messages survive.
	bareLicense = regexp.MustCompile(`\d{9,12}`)
)

// HasLicenseToken reports whether text carries something that looks like a
// FAL license or deed number.
func (c *Classifier) HasLicenseToken(text string) bool {
	if labeledLicense.MatchString(text) {
		return true
	}
	return bareLicense.MatchString(text)
}

// IsOffTopic reports whether any configured keyword occurs in the text.
func (c *Classifier) IsOffTopic(text string) bool {
	return containsAny(text, c.offTopic)
}

// MentionsExcludedCity reports whether any disallowed city name occurs in
// the text.
func (c *Classifier) MentionsExcludedCity(text string) bool {
	return containsAny(text, c.excludedCities)
}

func containsAny(text string, vocab []string) bool {
	lowered := strings.ToLower(text)
	for _, term := range vocab {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
