package openai

import (
	"regexp"
	"strings"
)

// thinkTag matches the reasoning block some models prepend to their answer.
var thinkTag = regexp.MustCompile(`(?s)<think>.*?</think>`)

// stripThinking removes reasoning blocks and trims surrounding whitespace.
func stripThinking(s string) string {
	return strings.TrimSpace(thinkTag.ReplaceAllString(s, ""))
}
