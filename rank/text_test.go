package rank

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lowercases and splits", "Shipping-Times to CANADA?", []string{"shipping", "times", "canada"}},
		{"drops stop words", "What is the return policy", []string{"return", "policy"}},
		{"keeps repeated terms", "refund refund REFUND policy", []string{"refund", "refund", "refund", "policy"}},
		{"all stop words", "is it the a", []string{}},
		{"empty", "", []string{}},
		{"punctuation only", "?!... --", []string{}},
		{"keeps digits and underscores", "order_id 12345", []string{"order_id", "12345"}},
		{"unicode letters", "envío rápido", []string{"envío", "rápido"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.query))
		})
	}
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("The"))
	assert.False(t, IsStopWord("shipping"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "", truncateRunes("abc", 0))

	multi := strings.Repeat("é", 10)
	got := truncateRunes(multi, 4)
	assert.Equal(t, 4, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
