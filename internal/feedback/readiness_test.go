package feedback

import (
	"math"
	"testing"
)

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		scores []CriterionScore
		want   int
	}{
		{
			name: "no criteria",
			want: 0,
		},
		{
			name: "all perfect",
			scores: []CriterionScore{
				{Criterion: Discovery, Score: 10},
				{Criterion: ObjectionHandling, Score: 10},
				{Criterion: ProductKnowledge, Score: 10},
				{Criterion: Communication, Score: 10},
				{Criterion: Closing, Score: 10},
			},
			want: 100,
		},
		{
			name: "weighted mean",
			// 0.25*8 + 0.25*6 + 0.2*7 + 0.15*9 + 0.15*5 = 7.0
			scores: []CriterionScore{
				{Criterion: Discovery, Score: 8},
				{Criterion: ObjectionHandling, Score: 6},
				{Criterion: ProductKnowledge, Score: 7},
				{Criterion: Communication, Score: 9},
				{Criterion: Closing, Score: 5},
			},
			want: 70,
		},
		{
			name: "missing criteria excluded",
			// (0.25*8 + 0.15*4) / 0.4 = 6.5
			scores: []CriterionScore{
				{Criterion: Discovery, Score: 8},
				{Criterion: Closing, Score: 4},
			},
			want: 65,
		},
		{
			name: "scores clamped",
			scores: []CriterionScore{
				{Criterion: Discovery, Score: 14},
				{Criterion: ObjectionHandling, Score: -3},
			},
			// (0.25*10 + 0.25*0) / 0.5 = 5
			want: 50,
		},
		{
			name: "unknown criterion ignored",
			scores: []CriterionScore{
				{Criterion: "charisma", Score: 0},
				{Criterion: Communication, Score: 9},
			},
			want: 90,
		},
		{
			name: "only unknown criteria",
			scores: []CriterionScore{
				{Criterion: "charisma", Score: 10},
			},
			want: 0,
		},
		{
			name: "first of repeated criterion wins",
			scores: []CriterionScore{
				{Criterion: Discovery, Score: 6},
				{Criterion: Discovery, Score: 10},
			},
			want: 60,
		},
		{
			name: "rounds to nearest",
			// mean 7.255
			scores: []CriterionScore{
				{Criterion: Discovery, Score: 7.25},
				{Criterion: ObjectionHandling, Score: 7.26},
			},
			want: 73,
		},
		{
			name: "NaN counts as zero",
			scores: []CriterionScore{
				{Criterion: Discovery, Score: math.NaN()},
				{Criterion: ObjectionHandling, Score: 10},
			},
			want: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Readiness(tt.scores); got != tt.want {
				t.Errorf("Readiness() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		readiness int
		want      Level
	}{
		{readiness: 100, want: LevelReady},
		{readiness: 80, want: LevelReady},
		{readiness: 79, want: LevelDeveloping},
		{readiness: 60, want: LevelDeveloping},
		{readiness: 59, want: LevelNeedsPractice},
		{readiness: 0, want: LevelNeedsPractice},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.readiness); got != tt.want {
			t.Errorf("LevelFor(%d) = %q, want %q", tt.readiness, got, tt.want)
		}
	}
}

func TestWeightsCoverRubric(t *testing.T) {
	var total float64
	for _, c := range Rubric {
		w, ok := Weights[c]
		if !ok {
			t.Fatalf("criterion %q has no weight", c)
		}
		total += w
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("weights sum to %f, want 1", total)
	}
	if len(Weights) != len(Rubric) {
		t.Errorf("len(Weights) = %d, want %d", len(Weights), len(Rubric))
	}
}
