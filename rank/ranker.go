package rank

import (
	"slices"
	"strings"

	"github.com/poiesic/supportai/core"
)

const (
	// DefaultTopN is the number of pages included in an answer's context.
	DefaultTopN = 3

	// MaxExcerptChars caps each page excerpt, in characters.
	MaxExcerptChars = 5000
)

// Score rates every part against query, keeping corpus order.
func Score(parts []core.ContextPart, query string) []core.ScoredContextPart {
	return scoreTerms(parts, Tokenize(query))
}

// Rank returns up to limit parts ordered by descending score.
// Ties keep corpus order. A limit below 1 returns every part.
func Rank(parts []core.ContextPart, query string, limit int) []core.ScoredContextPart {
	scored := Score(parts, query)
	slices.SortStableFunc(scored, func(a, b core.ScoredContextPart) int {
		return b.Score - a.Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Retrieve builds the context block for query: the DefaultTopN best pages,
// each cut to MaxExcerptChars, labelled with its URL and separated by a
// blank line. An empty corpus yields an empty string.
func Retrieve(parts []core.ContextPart, query string) string {
	top := Rank(parts, query, DefaultTopN)

	excerpts := make([]string, len(top))
	for i, part := range top {
		excerpts[i] = "Source: " + part.URL + "\n" + truncateRunes(part.Text, MaxExcerptChars)
	}
	return strings.Join(excerpts, "\n\n")
}

func scoreTerms(parts []core.ContextPart, terms []string) []core.ScoredContextPart {
	scored := make([]core.ScoredContextPart, len(parts))
	for i, part := range parts {
		text := strings.ToLower(part.Text)
		score := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				score++
			}
		}
		scored[i] = core.ScoredContextPart{ContextPart: part, Score: score}
	}
	return scored
}
