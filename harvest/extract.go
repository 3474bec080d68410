package harvest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// strippedSelectors lists the elements that never carry page content.
const strippedSelectors = "script, style, nav, footer, noscript, iframe, svg, template"

// inlineElements flow with the surrounding text. Every other element is a
// word boundary.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"code": true, "data": true, "dfn": true, "em": true, "i": true, "kbd": true,
	"label": true, "mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"var": true,
}

// ExtractText parses an HTML document and returns its visible text with
// navigation, scripts and styling removed and whitespace collapsed.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strippedSelectors).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b strings.Builder
	for _, n := range root.Nodes {
		writeText(&b, n)
	}
	return normalizeText(b.String()), nil
}

// writeText appends the text under n, padding block elements with spaces so
// adjacent headings, paragraphs and list items stay separate words.
func writeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}

	block := n.Type == html.ElementNode && !inlineElements[n.Data]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

// normalizeText collapses every run of whitespace into a single space and trims the ends.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
