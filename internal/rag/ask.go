package rag

import (
	"context"
	"time"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/vectorstore"
)

// Ask retrieves sections for the question and answers from them.
func (r *Retriever) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	results, debug, err := r.retrieve(ctx, req)
	if err != nil {
		return AskResponse{}, err
	}
	retrieval := time.Since(start)

	answer, err := r.GenerateAnswer(ctx, req.Question, req.TopicTitle, results)
	if err != nil {
		return AskResponse{}, err
	}

	resp := AskResponse{
		Answer:     answer,
		References: references(results),
		Abstained:  len(results) == 0,
	}
	if debug != nil {
		debug.Latency = LatencyBreakdown{
			RetrievalMs:  retrieval.Milliseconds(),
			GenerationMs: (time.Since(start) - retrieval).Milliseconds(),
			TotalMs:      time.Since(start).Milliseconds(),
		}
		resp.Debug = debug
	}

	logger.InfoContext(ctx, "question answered",
		"topic_id", req.TopicID,
		"sections", len(results),
		"abstained", resp.Abstained,
		"answer_length", len(answer),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// StreamAsk is Ask with the answer delivered through callback. The
// references are known before streaming starts and are returned once the
// stream ends.
func (r *Retriever) StreamAsk(ctx context.Context, req AskRequest, callback func(chunk string) error) ([]Reference, error) {
	results, _, err := r.retrieve(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := r.StreamAnswer(ctx, req.Question, req.TopicTitle, results, callback); err != nil {
		return nil, err
	}
	return references(results), nil
}

// retrieve searches for the question and applies optional reranking.
func (r *Retriever) retrieve(ctx context.Context, req AskRequest) ([]vectorstore.SearchResult, *DebugInfo, error) {
	results, err := r.SearchSections(ctx, req.Question, req.TopicID, req.Limit)
	if err != nil {
		return nil, nil, err
	}
	if !req.Rerank && !req.Debug {
		return results, nil, nil
	}

	scored := make([]scoredSection, len(results))
	if req.Rerank {
		scored = rerank(req.Question, results)
		for i := range scored {
			results[i] = scored[i].result
		}
	} else {
		for i, res := range results {
			scored[i] = scoredSection{result: res, final: res.Similarity}
		}
	}

	if !req.Debug {
		return results, nil, nil
	}
	debug := &DebugInfo{RetrievedSections: make([]RetrievedSection, len(scored))}
	for i, s := range scored {
		debug.RetrievedSections[i] = RetrievedSection{
			SectionID:    s.result.ID,
			Title:        s.result.Metadata.Title,
			ScoreVector:  s.result.Similarity,
			ScoreLexical: s.lexical,
			ScoreFinal:   s.final,
			Text:         s.result.Content,
			Rank:         i + 1,
		}
	}
	return results, debug, nil
}

func references(results []vectorstore.SearchResult) []Reference {
	refs := make([]Reference, len(results))
	for i, res := range results {
		refs[i] = Reference{
			SectionID:  res.ID,
			TopicID:    res.TopicID,
			Title:      res.Metadata.Title,
			ChunkIndex: res.Metadata.ChunkIndex,
			Similarity: res.Similarity,
		}
	}
	return refs
}
