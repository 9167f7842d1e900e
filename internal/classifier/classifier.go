package classifier

import (
	"strings"
)

// Classifier tags a user message with a coarse topic category and a
// sentiment score for analytics.
type Classifier interface {
	Classify(message string) string
	SentimentScore(message string) int
}

// categoryRules are evaluated in order; the first rule with a matching
// keyword wins. Matching is substring containment on the lowercased
// message, not word-boundary matching.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"hours", []string{"hours", "time"}},
	{"location", []string{"location", "locate", "address"}},
	{"payment", []string{"payment", "pay", "method"}},
	{"services", []string{"services", "offer", "provide"}},
}

var (
	positiveKeywords = []string{"good", "great", "excellent", "happy", "love", "best"}
	negativeKeywords = []string{"bad", "terrible", "awful", "unhappy", "hate", "worst"}
)

// KeywordClassifier is a deterministic keyword-rule classifier. It needs no
// model and no network access.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify returns the topic category of a message, or "general" when no
// rule matches.
func (c *KeywordClassifier) Classify(message string) string {
	message = strings.ToLower(message)

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(message, keyword) {
				return rule.category
			}
		}
	}
	return "general"
}

// SentimentScore returns 1, -1 or 0 depending on whether more positive or
// negative keywords appear in the message. Negative keywords are stripped
// before positive matching so that "unhappy" is not also counted as "happy";
// matching stays substring-based otherwise.
func (c *KeywordClassifier) SentimentScore(message string) int {
	message = strings.ToLower(message)

	negative := 0
	for _, keyword := range negativeKeywords {
		if strings.Contains(message, keyword) {
			negative++
			message = strings.ReplaceAll(message, keyword, "")
		}
	}

	positive := 0
	for _, keyword := range positiveKeywords {
		if strings.Contains(message, keyword) {
			positive++
		}
	}

	switch {
	case positive > negative:
		return 1
	case negative > positive:
		return -1
	default:
		return 0
	}
}
