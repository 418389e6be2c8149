package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsSumToOne(t *testing.T) {
	sum := WeightSpeed + WeightStart + WeightClosure + WeightBacklog + WeightStale + WeightDuration
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestComputeSubScores(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInputs
		want SubScores
	}{
		{
			name: "no data uses defaults",
			in:   ScoreInputs{},
			want: SubScores{Speed: 50, Start: 50, Closure: 0, Backlog: 100, Stale: 100, Duration: 60},
		},
		{
			name: "fast and fully closed",
			in: ScoreInputs{
				AvgAnswerMinutes: 30,
				AvgStartMinutes:  10,
				AvgCloseMinutes:  60,
				ClosureRatio:     1,
			},
			want: SubScores{Speed: 92.5, Start: 98, Closure: 100, Backlog: 100, Stale: 100, Duration: 100 - 60.0/1440*8},
		},
		{
			name: "values below zero are clamped",
			in: ScoreInputs{
				AvgAnswerMinutes: 24 * 60,
				AvgStartMinutes:  24 * 60,
				AvgCloseMinutes:  30 * 24 * 60,
				OpenRatio:        1,
				StaleRatio:       1,
			},
			want: SubScores{Speed: 0, Start: 0, Closure: 0, Backlog: 0, Stale: 0, Duration: 0},
		},
		{
			name: "partial ratios",
			in:   ScoreInputs{ClosureRatio: 0.5, OpenRatio: 0.5, StaleRatio: 0.25},
			want: SubScores{Speed: 50, Start: 50, Closure: 55, Backlog: 40, Stale: 60, Duration: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSubScores(tt.in)
			assert.InDelta(t, tt.want.Speed, got.Speed, 1e-9)
			assert.InDelta(t, tt.want.Start, got.Start, 1e-9)
			assert.InDelta(t, tt.want.Closure, got.Closure, 1e-9)
			assert.InDelta(t, tt.want.Backlog, got.Backlog, 1e-9)
			assert.InDelta(t, tt.want.Stale, got.Stale, 1e-9)
			assert.InDelta(t, tt.want.Duration, got.Duration, 1e-9)
		})
	}
}

func TestComposite(t *testing.T) {
	assert.Equal(t, 100, Composite(SubScores{Speed: 100, Start: 100, Closure: 100, Backlog: 100, Stale: 100, Duration: 100}))
	assert.Equal(t, 0, Composite(SubScores{}))
	assert.Equal(t, 56, Composite(SubScores{Speed: 50, Start: 50, Backlog: 100, Stale: 100, Duration: 60}))
}

func TestClassifyGrade(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{score: 100, want: GradeExcellent},
		{score: 85, want: GradeExcellent},
		{score: 84, want: GradeGood},
		{score: 70, want: GradeGood},
		{score: 69, want: GradeAcceptable},
		{score: 55, want: GradeAcceptable},
		{score: 54, want: GradeCritical},
		{score: 0, want: GradeCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyGrade(tt.score), "score=%d", tt.score)
	}
}

func TestComputeScore_FactorsAreAuditable(t *testing.T) {
	d := Durations{AvgStartMinutes: 10, AvgAnswerMinutes: 30, AvgCloseMinutes: 60}
	dist := Distribution{TotalCount: 4, ClosedCount: 2, OpenCount: 2, ClosureRatio: 0.5, OpenRatio: 0.5, CompletionRatePercent: 50}

	score := ComputeScore(d, dist)

	require.Len(t, score.Factors, 6)
	var sum float64
	for _, f := range score.Factors {
		assert.InDelta(t, f.SubScore*f.Weight, f.Partial, 1e-12)
		assert.NotEmpty(t, f.Explanation, string(f.Key))
		sum += f.Partial
	}
	assert.Equal(t, Composite(score.SubScores), score.Value)
	assert.InDelta(t, float64(score.Value), sum, 0.5)
	assert.Equal(t, FactorSpeed, score.Factors[0].Key)
	assert.Equal(t, "average first reply: 30 minute(s)", score.Factors[0].Explanation)
	assert.Equal(t, "closed: 2 of 4 (50.0%)", score.Factors[2].Explanation)
	assert.Equal(t, "average time to close: 1.0 hour(s)", score.Factors[5].Explanation)
}
