package indexer

import (
	"strings"
	"unicode"
)

const (
	// DefaultMaxChunkLength is the default window size in characters.
	DefaultMaxChunkLength = 1500
	// DefaultOverlap is the default number of characters shared by consecutive chunks.
	DefaultOverlap = 200

	paragraphLookback = 200 // how far back from the window edge a "\n\n" may sit
	sentenceLookback  = 100 // how far back from the window edge a ". " may sit
	wordAlignReach    = 20  // max forward skip to realign a mid-word start
)

// SplitTextIntoChunks splits text into overlapping, boundary-aware chunks of at
// most maxChunkLength characters. Lengths are measured in runes.
//
// Text that fits in a single window is returned unchanged as the only chunk,
// including the empty string. Longer text is cut at the nearest paragraph
// break, then sentence break, then whitespace before the window edge; when
// none exists the window is cut at the hard limit.
func SplitTextIntoChunks(text string, maxChunkLength, overlap int) []Chunk {
	if maxChunkLength <= 0 {
		maxChunkLength = DefaultMaxChunkLength
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	n := len(runes)
	if n <= maxChunkLength {
		return []Chunk{{Index: 0, Text: text}}
	}

	var chunks []Chunk
	start, prevEnd := 0, 0
	for start < n {
		end := start + maxChunkLength
		if end < n {
			// Breaks at or before the previous cut would repeat a window.
			end = findBreak(runes, max(start, prevEnd), end)
		} else {
			end = n
		}
		prevEnd = end

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: piece})
		}
		if end >= n {
			break
		}

		next := min(alignToWord(runes, end-overlap), end)
		if next <= start {
			// Overlap would stall the window; continue from the cut.
			next = end
		}
		start = next
	}

	return chunks
}

// findBreak moves end back to the best break point in (floor, end).
func findBreak(runes []rune, floor, end int) int {
	if p := lastIndexOf(runes, "\n\n", max(floor+1, end-paragraphLookback), end); p >= 0 {
		return p
	}
	if p := lastIndexOf(runes, ". ", max(floor+1, end-sentenceLookback), end); p >= 0 {
		return p + 1
	}
	for p := end - 1; p > floor; p-- {
		if unicode.IsSpace(runes[p]) {
			return p
		}
	}
	return end
}

// lastIndexOf returns the last position p in [from, to) where sep starts and
// fits entirely before to, or -1.
func lastIndexOf(runes []rune, sep string, from, to int) int {
	s := []rune(sep)
	for p := to - len(s); p >= from; p-- {
		match := true
		for i := range s {
			if runes[p+i] != s[i] {
				match = false
				break
			}
		}
		if match {
			return p
		}
	}
	return -1
}

// alignToWord moves a start position that falls inside a word to just after
// the next whitespace, if one is within reach. Otherwise pos is returned.
func alignToWord(runes []rune, pos int) int {
	if pos <= 0 || pos >= len(runes) {
		return pos
	}
	if unicode.IsSpace(runes[pos]) || unicode.IsSpace(runes[pos-1]) {
		return pos
	}
	limit := min(len(runes), pos+wordAlignReach)
	for i := pos; i < limit; i++ {
		if unicode.IsSpace(runes[i]) {
			return i + 1
		}
	}
	return pos
}
