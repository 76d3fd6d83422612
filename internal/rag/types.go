package rag

// AskRequest represents a grounded question.
type AskRequest struct {
	// Question is the learner's question.
	Question string
	// TopicID restricts retrieval to one topic. Empty searches every topic.
	TopicID string
	// TopicTitle is shown to the model as the scope of the question.
	TopicTitle string
	// Limit is the number of sections to retrieve. 0 means DefaultLimit.
	Limit int
	// Rerank reorders retrieved sections by blending similarity with a
	// lexical score before they are sent to the model.
	Rerank bool
	// Debug returns per-section scores and timings.
	Debug bool
}

// Reference points at a section used to answer.
type Reference struct {
	// SectionID is the section identifier in the index.
	SectionID string `json:"section_id"`
	// TopicID is the topic the section belongs to.
	TopicID string `json:"topic_id"`
	// Title is the title of the section's source document.
	Title string `json:"title"`
	// ChunkIndex is the position of the section within its document.
	ChunkIndex int `json:"chunk_index"`
	// Similarity is the cosine similarity to the question.
	Similarity float64 `json:"similarity"`
}

// AskResponse represents a grounded answer.
type AskResponse struct {
	// Answer is the generated answer, or FallbackAnswer.
	Answer string `json:"answer"`
	// References are the sections the answer was generated from, in prompt order.
	References []Reference `json:"references"`
	// Abstained is true when no section matched and FallbackAnswer was returned.
	Abstained bool `json:"abstained,omitempty"`
	// Debug is set when the request asked for it.
	Debug *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo contains retrieval details for evaluating answers.
type DebugInfo struct {
	RetrievedSections []RetrievedSection `json:"retrieved_sections"`
	Latency           LatencyBreakdown   `json:"latency"`
}

// RetrievedSection is a retrieved section with its scores.
type RetrievedSection struct {
	SectionID    string  `json:"section_id"`
	Title        string  `json:"title"`
	ScoreVector  float64 `json:"score_vector"`
	ScoreLexical float64 `json:"score_lexical,omitempty"`
	ScoreFinal   float64 `json:"score_final"`
	Text         string  `json:"text"`
	Rank         int     `json:"rank"` // 1-based
}

// LatencyBreakdown contains timing for each phase of a question.
type LatencyBreakdown struct {
	RetrievalMs  int64 `json:"retrieval_ms"`
	GenerationMs int64 `json:"generation_ms"`
	TotalMs      int64 `json:"total_ms"`
}
