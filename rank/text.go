package rank

import (
	"strings"
	"unicode"
)

// Stop words dropped from queries before scoring
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "or": true, "i": true, "me": true, "my": true,
	"we": true, "our": true, "your": true, "can": true, "does": true, "if": true,
	"what": true, "how": true, "when": true, "where": true, "will": true, "so": true,
}

// IsStopWord reports whether word is ignored when scoring.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}

// Tokenize lowercases query, splits it on non-word characters and removes
// stop words. Repeated terms are kept, so each one counts when scoring.
func Tokenize(query string) []string {
	words := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	terms := make([]string, 0, len(words))
	for _, word := range words {
		if !stopWords[word] {
			terms = append(terms, word)
		}
	}
	return terms
}

// truncateRunes returns at most n characters of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
