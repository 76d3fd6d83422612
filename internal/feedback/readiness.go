// Package feedback scores role-play transcripts against a fixed sales rubric.
package feedback

import "math"

// Criterion is one rubric dimension.
type Criterion string

// Rubric criteria.
const (
	Discovery         Criterion = "discovery"
	ObjectionHandling Criterion = "objection_handling"
	ProductKnowledge  Criterion = "product_knowledge"
	Communication     Criterion = "communication"
	Closing           Criterion = "closing"
)

// Rubric lists the criteria in report order.
var Rubric = []Criterion{Discovery, ObjectionHandling, ProductKnowledge, Communication, Closing}

// Weights is the contribution of each criterion to readiness.
var Weights = map[Criterion]float64{
	Discovery:         0.25,
	ObjectionHandling: 0.25,
	ProductKnowledge:  0.20,
	Communication:     0.15,
	Closing:           0.15,
}

// MaxScore is the top of the per-criterion scale.
const MaxScore = 10

// Level buckets a readiness score.
type Level string

// Readiness levels.
const (
	LevelReady         Level = "ready"
	LevelDeveloping    Level = "developing"
	LevelNeedsPractice Level = "needs_practice"
)

// Level thresholds on the 0-100 readiness scale.
const (
	ReadyThreshold      = 80
	DevelopingThreshold = 60
)

// CriterionScore is the score of one criterion.
type CriterionScore struct {
	Criterion Criterion `json:"criterion"`
	Score     float64   `json:"score"`
	Comment   string    `json:"comment,omitempty"`
}

// Readiness aggregates criterion scores into a 0-100 score: the weighted mean
// of the clamped scores of the rubric criteria present, times ten, rounded.
// Unknown criteria and repeats of a criterion are ignored. No rubric
// criterion yields 0.
func Readiness(scores []CriterionScore) int {
	var sum, weights float64
	seen := make(map[Criterion]bool, len(scores))
	for _, s := range scores {
		w, ok := Weights[s.Criterion]
		if !ok || seen[s.Criterion] {
			continue
		}
		seen[s.Criterion] = true
		sum += w * clampScore(s.Score)
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return int(math.Round(MaxScore * sum / weights))
}

// LevelFor maps a readiness score to its level.
func LevelFor(readiness int) Level {
	switch {
	case readiness >= ReadyThreshold:
		return LevelReady
	case readiness >= DevelopingThreshold:
		return LevelDeveloping
	default:
		return LevelNeedsPractice
	}
}

func clampScore(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	return min(max(s, 0), MaxScore)
}
