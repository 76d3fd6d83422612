package indexer

import (
	"regexp"
	"strings"
)

// DefaultSectionTitle is used when the source has no heading.
const DefaultSectionTitle = "Untitled Section"

var headingPattern = regexp.MustCompile(`(?m)^#+[ \t]+(.+)$`)

// Ordered rewrite rules applied by RemoveMarkdownFormatting.
var markdownRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile("(?s)```[^\\n`]*\\n?(.*?)```"), "$1"},
	{regexp.MustCompile("`([^`\\n]+)`"), "$1"},
	{regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`(?m)^[ \t]*(?:[-*_][ \t]*){3,}$`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*(?:(?:#{1,6}|[-*+>]|\d+\.)[ \t]+)+`), ""},
	{regexp.MustCompile(`\*\*([^*]+?)\*\*`), "$1"},
	{regexp.MustCompile(`__([^_]+?)__`), "$1"},
	{regexp.MustCompile(`~~([^~]+?)~~`), "$1"},
	{regexp.MustCompile(`\*([^*\n]+)\*`), "$1"},
	{regexp.MustCompile(`\b_([^_\n]+)_\b`), "$1"},
	{regexp.MustCompile(`[ \t]*\n\s*`), " "},
}

// ExtractSectionTitle returns the text of the first ATX heading in source,
// or DefaultSectionTitle.
func ExtractSectionTitle(source string) string {
	m := headingPattern.FindStringSubmatch(source)
	if m == nil {
		return DefaultSectionTitle
	}
	title := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), "#"))
	if title == "" {
		return DefaultSectionTitle
	}
	return title
}

// RemoveMarkdownFormatting renders Markdown as plain text: heading, emphasis,
// list and quote markers are dropped, links and images keep their text, code
// keeps its content and line breaks collapse to single spaces.
//
// The rules are reapplied until the text stops changing, so the result is
// stable under a second application.
func RemoveMarkdownFormatting(md string) string {
	s := md
	for {
		next := s
		for _, rule := range markdownRules {
			next = rule.re.ReplaceAllString(next, rule.repl)
		}
		next = strings.TrimSpace(next)
		if next == s {
			return s
		}
		s = next
	}
}

// CountWords counts whitespace-delimited tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
