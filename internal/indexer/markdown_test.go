package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSectionTitle(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "first heading", source: "# My Title\n\nSome body text", want: "My Title"},
		{name: "no heading", source: "Some body text", want: DefaultSectionTitle},
		{name: "empty", source: "", want: DefaultSectionTitle},
		{name: "deeper heading first", source: "Intro line\n## Second level ##\n# Top", want: "Second level"},
		{name: "hashtag is not a heading", source: "#hashtag\n# Real Title", want: "Real Title"},
		{name: "indented marker is not a heading", source: "   # Indented\nbody", want: DefaultSectionTitle},
		{name: "trailing spaces trimmed", source: "###   Pricing Tiers   \ntext", want: "Pricing Tiers"},
		{name: "only closing hashes", source: "# ##\nbody", want: DefaultSectionTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSectionTitle(tt.source); got != tt.want {
				t.Errorf("ExtractSectionTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveMarkdownFormatting(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "heading emphasis link and code",
			md:   "# Title\n\nSome **bold** and *italic* text with [a link](http://x) and `code`.",
			want: "Title Some bold and italic text with a link and code.",
		},
		{
			name: "lists",
			md:   "- one\n- two\n1. three\n* four",
			want: "one two three four",
		},
		{
			name: "blockquote",
			md:   "> Customers buy outcomes.",
			want: "Customers buy outcomes.",
		},
		{
			name: "fenced code keeps content",
			md:   "```go\nfmt.Println()\n```",
			want: "fmt.Println()",
		},
		{
			name: "strikethrough and underscores",
			md:   "~~old~~ new __strong__ _soft_",
			want: "old new strong soft",
		},
		{
			name: "image keeps alt text",
			md:   "See ![pipeline chart](chart.png) below",
			want: "See pipeline chart below",
		},
		{
			name: "horizontal rule",
			md:   "above\n\n---\n\nbelow",
			want: "above below",
		},
		{
			name: "snake_case survives",
			md:   "call open_deal_count",
			want: "call open_deal_count",
		},
		{
			name: "plain text unchanged",
			md:   "Nothing to strip here.",
			want: "Nothing to strip here.",
		},
		{
			name: "nested emphasis",
			md:   "***very*** important",
			want: "very important",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveMarkdownFormatting(tt.md); got != tt.want {
				t.Errorf("RemoveMarkdownFormatting() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveMarkdownFormatting_Idempotent(t *testing.T) {
	inputs := []string{
		"# Title\n\nSome **bold** text",
		"- a\n- b\n\n> c",
		"**__mixed__** *emphasis* with `code` and [link](u)",
		"```\nblock\n```\n\nafter",
		"* * *\n\n1. item\n2. item",
		"#### ## odd heading markers",
		"> - quoted list item",
		"text with * lone asterisk and _ lone underscore",
		numberedText(200),
	}

	for _, in := range inputs {
		once := RemoveMarkdownFormatting(in)
		twice := RemoveMarkdownFormatting(once)
		assert.Equal(t, once, twice, "not idempotent for %q", in)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "   ", want: 0},
		{text: "one", want: 1},
		{text: "one two\tthree\nfour", want: 4},
	}

	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
