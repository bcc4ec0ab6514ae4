package safety

import (
	"regexp"
	"strings"
)

// confusionPatterns flag severe confusion or delusion: intruder beliefs,
// theft accusations, dead-relative-presence claims, lost sense of place
// or person. Matching is a boolean OR with no severity tiers.
var confusionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`people\s+in\s+my\s+house`),
	regexp.MustCompile(`stealing\s+(?:my|from\s+me)`),
	regexp.MustCompile(`(?:mother|father|spouse)\s+(?:is\s+)?(?:alive|here|waiting)`),
	regexp.MustCompile(`need\s+to\s+(?:go\s+)?(?:work|job|office)`),
	regexp.MustCompile(`where\s+(?:am\s+i|is\s+this)`),
	regexp.MustCompile(`who\s+are\s+you`),
}

// DetectConfusion reports whether a message matches any confusion or
// delusion pattern
func DetectConfusion(message string) bool {
	lower := strings.ToLower(message)
	for _, pattern := range confusionPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}
