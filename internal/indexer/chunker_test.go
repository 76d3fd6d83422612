package indexer

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

// numberedText builds non-repeating prose so every chunk occurs once in it.
func numberedText(words int) string {
	var b strings.Builder
	for i := 0; i < words; i++ {
		fmt.Fprintf(&b, "word%d", i)
		switch {
		case i%47 == 46:
			b.WriteString(".\n\n")
		case i%11 == 10:
			b.WriteString(". ")
		default:
			b.WriteString(" ")
		}
	}
	return b.String()
}

// locate returns the byte offset of each chunk in text, searching forward.
func locate(t *testing.T, text string, chunks []Chunk) []int {
	t.Helper()
	positions := make([]int, len(chunks))
	from := 0
	for i, c := range chunks {
		idx := strings.Index(text[from:], c.Text)
		if idx < 0 {
			t.Fatalf("chunk %d not found in text after offset %d: %q", i, from, c.Text)
		}
		positions[i] = from + idx
		from = positions[i] + 1
	}
	return positions
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestSplitTextIntoChunks_SingleChunk(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
	}{
		{name: "empty", text: "", max: 1500},
		{name: "short", text: "Hello world.", max: 1500},
		{name: "whitespace kept", text: "  padded text \n", max: 1500},
		{name: "exactly max", text: strings.Repeat("a", 1500), max: 1500},
		{name: "multi-byte at max", text: strings.Repeat("é", 10), max: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTextIntoChunks(tt.text, tt.max, 200)
			if len(got) != 1 {
				t.Fatalf("SplitTextIntoChunks() returned %d chunks, want 1", len(got))
			}
			if got[0].Text != tt.text || got[0].Index != 0 {
				t.Errorf("SplitTextIntoChunks() = %+v, want [{0 %q}]", got[0], tt.text)
			}
		})
	}
}

func TestSplitTextIntoChunks_HelloWorldExample(t *testing.T) {
	text := strings.Repeat("Hello world. ", 200)
	chunks := SplitTextIntoChunks(text, 1500, 200)

	if len(chunks) != 2 {
		t.Fatalf("SplitTextIntoChunks() returned %d chunks, want 2", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d Index = %d", i, c.Index)
		}
		if !strings.HasSuffix(c.Text, ".") {
			t.Errorf("chunk %d should end at a sentence boundary, ends with %q", i, c.Text[len(c.Text)-5:])
		}
		if !strings.HasPrefix(c.Text, "Hello") {
			t.Errorf("chunk %d should start on a word, starts with %q", i, c.Text[:5])
		}
	}
	if n := utf8.RuneCountInString(chunks[0].Text); n != 1494 {
		t.Errorf("first chunk length = %d, want 1494", n)
	}
	if n := utf8.RuneCountInString(chunks[1].Text); n != 1299 {
		t.Errorf("second chunk length = %d, want 1299", n)
	}

	// The first chunk covers [0, 1494); the second starts at 1300.
	shared := 1494 - 1300
	if shared < 180 || shared > 200 {
		t.Errorf("overlap = %d, want about 200", shared)
	}
	if squash(text) != squash(chunks[0].Text+text[1494:]) {
		t.Error("chunks should cover the whole text")
	}
}

func TestSplitTextIntoChunks_Reconstruction(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		max         int
		overlap     int
		wantOverlap bool
	}{
		{name: "default sizes", text: numberedText(1200), max: 1500, overlap: 200, wantOverlap: true},
		{name: "small windows", text: numberedText(300), max: 120, overlap: 30},
		{name: "no overlap", text: numberedText(300), max: 100, overlap: 0},
		{name: "tiny overlap", text: numberedText(300), max: 100, overlap: 5},
		{name: "overlap near max", text: numberedText(200), max: 80, overlap: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitTextIntoChunks(tt.text, tt.max, tt.overlap)
			if len(chunks) < 2 {
				t.Fatalf("SplitTextIntoChunks() returned %d chunks, want several", len(chunks))
			}

			positions := locate(t, tt.text, chunks)
			rebuilt := chunks[0].Text
			prevEnd := positions[0] + len(chunks[0].Text)
			for i := 1; i < len(chunks); i++ {
				start := positions[i]
				end := start + len(chunks[i].Text)
				if tt.wantOverlap && start >= prevEnd {
					t.Errorf("chunk %d starts at %d, after previous end %d; want overlap", i, start, prevEnd)
				}
				if end > prevEnd {
					rebuilt += tt.text[prevEnd:end]
					prevEnd = end
				}
			}

			if squash(rebuilt) != squash(tt.text) {
				t.Errorf("reconstruction differs from source (modulo whitespace)")
			}
		})
	}
}

func TestSplitTextIntoChunks_LengthBound(t *testing.T) {
	texts := map[string]string{
		"prose":      numberedText(2000),
		"repetitive": strings.Repeat("Hello world. ", 500),
		"no breaks":  strings.Repeat("x", 5000),
		"multi-byte": strings.Repeat("héllo wörld ünd mehr. ", 400),
	}

	for name, text := range texts {
		t.Run(name, func(t *testing.T) {
			for _, c := range SplitTextIntoChunks(text, 1500, 200) {
				if n := utf8.RuneCountInString(c.Text); n > 1500 {
					t.Errorf("chunk %d has %d runes, want <= 1500", c.Index, n)
				}
				if c.Text == "" {
					t.Errorf("chunk %d is empty", c.Index)
				}
			}
		})
	}
}

func TestSplitTextIntoChunks_BreakPriority(t *testing.T) {
	t.Run("paragraph break wins", func(t *testing.T) {
		p1 := strings.Repeat("One two three. ", 4)
		p2 := strings.Repeat("Four five six. ", 6)
		chunks := SplitTextIntoChunks(p1+"\n\n"+p2, 100, 10)
		if chunks[0].Text != strings.TrimSpace(p1) {
			t.Errorf("first chunk = %q, want the first paragraph", chunks[0].Text)
		}
	})

	t.Run("sentence break keeps the period", func(t *testing.T) {
		text := strings.Repeat("Short sentence here. ", 10)
		chunks := SplitTextIntoChunks(text, 100, 10)
		if !strings.HasSuffix(chunks[0].Text, "here.") {
			t.Errorf("first chunk = %q, want it to end with a sentence", chunks[0].Text)
		}
	})

	t.Run("falls back to whitespace", func(t *testing.T) {
		var words []string
		for i := 0; i < 100; i++ {
			words = append(words, fmt.Sprintf("token%d", i))
		}
		text := strings.Join(words, " ")
		known := map[string]bool{}
		for _, w := range words {
			known[w] = true
		}
		for _, c := range SplitTextIntoChunks(text, 75, 15) {
			for _, f := range strings.Fields(c.Text) {
				if !known[f] {
					t.Errorf("chunk %d contains a split word %q", c.Index, f)
				}
			}
		}
	})

	// Tabs and single newlines count as spaces for the last-resort break
	// and for realigning the overlap.
	for name, sep := range map[string]string{"tab separated": "\t", "line separated": "\n"} {
		t.Run(name, func(t *testing.T) {
			var words []string
			for i := 0; i < 100; i++ {
				words = append(words, fmt.Sprintf("row%d", i))
			}
			known := map[string]bool{}
			for _, w := range words {
				known[w] = true
			}
			chunks := SplitTextIntoChunks(strings.Join(words, sep), 60, 12)
			if len(chunks) < 2 {
				t.Fatalf("SplitTextIntoChunks() returned %d chunks, want several", len(chunks))
			}
			for _, c := range chunks {
				for _, f := range strings.Fields(c.Text) {
					if !known[f] {
						t.Errorf("chunk %d contains a split word %q", c.Index, f)
					}
				}
			}
		})
	}
}

// A window without any whitespace is cut at the hard limit, splitting a word.
func TestSplitTextIntoChunks_HardCutEdgeCase(t *testing.T) {
	text := strings.Repeat("a", 3100)
	chunks := SplitTextIntoChunks(text, 1500, 200)

	want := []int{1500, 1500, 500}
	if len(chunks) != len(want) {
		t.Fatalf("SplitTextIntoChunks() returned %d chunks, want %d", len(chunks), len(want))
	}
	for i, n := range want {
		if len(chunks[i].Text) != n {
			t.Errorf("chunk %d length = %d, want %d", i, len(chunks[i].Text), n)
		}
	}
}

func TestSplitTextIntoChunks_MultiByteSafe(t *testing.T) {
	text := strings.Repeat("Привет мир. ", 300)
	for _, c := range SplitTextIntoChunks(text, 200, 40) {
		if !utf8.ValidString(c.Text) {
			t.Fatalf("chunk %d is not valid UTF-8", c.Index)
		}
	}
}

func TestSplitTextIntoChunks_Defaults(t *testing.T) {
	text := numberedText(800)
	got := SplitTextIntoChunks(text, 0, -1)
	want := SplitTextIntoChunks(text, DefaultMaxChunkLength, 0)
	if len(got) != len(want) {
		t.Errorf("SplitTextIntoChunks() with invalid sizes returned %d chunks, want %d", len(got), len(want))
	}
}

func TestAlignToWord(t *testing.T) {
	runes := []rune("alpha beta gamma")
	tests := []struct {
		name string
		pos  int
		want int
	}{
		{name: "start of text", pos: 0, want: 0},
		{name: "already at word start", pos: 6, want: 6},
		{name: "on whitespace", pos: 5, want: 5},
		{name: "mid-word moves past next space", pos: 7, want: 11},
		{name: "mid last word stays", pos: 13, want: 13},
		{name: "end of text", pos: 16, want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alignToWord(runes, tt.pos); got != tt.want {
				t.Errorf("alignToWord(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestChunk_WordCount(t *testing.T) {
	c := Chunk{Text: "  Ask\topen   questions\nfirst "}
	if got := c.WordCount(); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
}
