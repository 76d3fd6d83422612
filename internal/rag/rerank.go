package rag

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"salescoach-ai/internal/vectorstore"
)

const (
	lexicalLengthScale = 10.0
	maxLexicalScore    = 0.4
	titleMatchBonus    = 0.1
)

var lexicalStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"do": {}, "does": {}, "for": {}, "from": {}, "has": {}, "have": {}, "how": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "should": {}, "the": {}, "to": {}, "was": {},
	"were": {}, "what": {}, "when": {}, "with": {},
}

// scoredSection is a search result with its blended score.
type scoredSection struct {
	result  vectorstore.SearchResult
	lexical float64
	final   float64
}

// rerank orders results by similarity plus lexical score, best first.
// Ties keep the index order.
func rerank(query string, results []vectorstore.SearchResult) []scoredSection {
	scored := make([]scoredSection, len(results))
	for i, res := range results {
		lex := lexicalScore(query, res.Content, res.Metadata.Title)
		scored[i] = scoredSection{result: res, lexical: lex, final: res.Similarity + lex}
	}
	slices.SortStableFunc(scored, func(a, b scoredSection) int {
		return cmp.Compare(b.final, a.final)
	})
	return scored
}

// lexicalScore computes a lightweight lexical relevance score for a section relative to a query.
// The score is normalized to remain in a predictable range so it can be blended with similarity.
func lexicalScore(query, text, title string) float64 {
	queryTokens := filterStopwords(tokenize(query))
	if len(queryTokens) == 0 {
		return 0
	}

	textTokens := tokenize(text)
	if len(textTokens) == 0 {
		return 0
	}

	freq := make(map[string]int, len(textTokens))
	for _, token := range textTokens {
		freq[token]++
	}

	var rawMatches int
	for _, token := range queryTokens {
		rawMatches += freq[token]
	}

	score := float64(rawMatches) / (1 + float64(len(textTokens))) * lexicalLengthScale

	if titleTokens := tokenize(title); len(titleTokens) > 0 {
		titleSet := make(map[string]struct{}, len(titleTokens))
		for _, token := range titleTokens {
			titleSet[token] = struct{}{}
		}
		var titleMatches int
		for _, token := range queryTokens {
			if _, ok := titleSet[token]; ok {
				titleMatches++
			}
		}
		score += float64(titleMatches) * titleMatchBonus
	}

	return min(max(score, 0), maxLexicalScore)
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func filterStopwords(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := lexicalStopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	return result
}
