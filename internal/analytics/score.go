package analytics

import (
	"fmt"
	"math"
)

// Grade classifies a composite score.
type Grade string

const (
	GradeExcellent  Grade = "Excellent"
	GradeGood       Grade = "Good"
	GradeAcceptable Grade = "Acceptable"
	GradeCritical   Grade = "Critical"
)

// FactorKey names one scoring factor.
type FactorKey string

const (
	FactorSpeed    FactorKey = "speed"
	FactorStart    FactorKey = "start"
	FactorClosure  FactorKey = "closure"
	FactorBacklog  FactorKey = "backlog"
	FactorStale    FactorKey = "stale"
	FactorDuration FactorKey = "duration"
)

// Factor weights; they sum to 1.
const (
	WeightSpeed    = 0.18
	WeightStart    = 0.12
	WeightClosure  = 0.25
	WeightBacklog  = 0.20
	WeightStale    = 0.15
	WeightDuration = 0.10
)

// Sub-scores used when a mean duration is unavailable (zero).
const (
	defaultSpeedScore    = 50
	defaultStartScore    = 50
	defaultDurationScore = 60
)

// ScoreInputs are the raw metrics the scorer normalizes.
type ScoreInputs struct {
	AvgAnswerMinutes float64
	AvgStartMinutes  float64
	AvgCloseMinutes  float64
	ClosureRatio     float64
	OpenRatio        float64
	StaleRatio       float64
}

// NewScoreInputs collects scorer inputs from the aggregator outputs.
func NewScoreInputs(d Durations, dist Distribution) ScoreInputs {
	return ScoreInputs{
		AvgAnswerMinutes: d.AvgAnswerMinutes,
		AvgStartMinutes:  d.AvgStartMinutes,
		AvgCloseMinutes:  d.AvgCloseMinutes,
		ClosureRatio:     dist.ClosureRatio,
		OpenRatio:        dist.OpenRatio,
		StaleRatio:       dist.StaleRatio,
	}
}

// SubScores are the six normalized metrics, each within [0,100].
type SubScores struct {
	Speed    float64 `json:"speed"`
	Start    float64 `json:"start"`
	Closure  float64 `json:"closure"`
	Backlog  float64 `json:"backlog"`
	Stale    float64 `json:"stale"`
	Duration float64 `json:"duration"`
}

// Factor is the audit trail for one weighted sub-score.
type Factor struct {
	Key         FactorKey `json:"key"`
	SubScore    float64   `json:"sub_score"`
	Weight      float64   `json:"weight"`
	Partial     float64   `json:"partial"`
	Explanation string    `json:"explanation"`
}

// Score is the scorer's full output.
type Score struct {
	Value     int       `json:"value"`
	Grade     Grade     `json:"grade"`
	SubScores SubScores `json:"sub_scores"`
	Factors   []Factor  `json:"factors"`
}

// ComputeSubScores normalizes the raw metrics.
func ComputeSubScores(in ScoreInputs) SubScores {
	sub := SubScores{
		Speed:    defaultSpeedScore,
		Start:    defaultStartScore,
		Closure:  clamp(in.ClosureRatio * 110),
		Backlog:  clamp(100 - in.OpenRatio*120),
		Stale:    clamp(100 - in.StaleRatio*160),
		Duration: defaultDurationScore,
	}
	if in.AvgAnswerMinutes != 0 {
		sub.Speed = clamp(100 - (in.AvgAnswerMinutes/minutesPerHour)*15)
	}
	if in.AvgStartMinutes != 0 {
		sub.Start = clamp(100 - (in.AvgStartMinutes/minutesPerHour)*12)
	}
	if in.AvgCloseMinutes != 0 {
		sub.Duration = clamp(100 - (in.AvgCloseMinutes/minutesPerDay)*8)
	}
	return sub
}

// Composite returns the rounded weighted sum of sub-scores, within [0,100].
func Composite(sub SubScores) int {
	var sum float64
	for _, f := range weighted(sub) {
		sum += f.Partial
	}
	return int(math.Round(clamp(sum)))
}

// ClassifyGrade maps a composite score to its grade.
func ClassifyGrade(score int) Grade {
	switch {
	case score >= 85:
		return GradeExcellent
	case score >= 70:
		return GradeGood
	case score >= 55:
		return GradeAcceptable
	default:
		return GradeCritical
	}
}

// ComputeScore runs the scorer over aggregated metrics and attaches a
// human-readable explanation to each factor.
func ComputeScore(d Durations, dist Distribution) Score {
	sub := ComputeSubScores(NewScoreInputs(d, dist))
	value := Composite(sub)

	factors := weighted(sub)
	for i := range factors {
		factors[i].Explanation = explain(factors[i].Key, d, dist)
	}
	return Score{
		Value:     value,
		Grade:     ClassifyGrade(value),
		SubScores: sub,
		Factors:   factors,
	}
}

func weighted(sub SubScores) []Factor {
	factors := []Factor{
		{Key: FactorSpeed, SubScore: sub.Speed, Weight: WeightSpeed},
		{Key: FactorStart, SubScore: sub.Start, Weight: WeightStart},
		{Key: FactorClosure, SubScore: sub.Closure, Weight: WeightClosure},
		{Key: FactorBacklog, SubScore: sub.Backlog, Weight: WeightBacklog},
		{Key: FactorStale, SubScore: sub.Stale, Weight: WeightStale},
		{Key: FactorDuration, SubScore: sub.Duration, Weight: WeightDuration},
	}
	for i := range factors {
		factors[i].Partial = factors[i].SubScore * factors[i].Weight
	}
	return factors
}

func explain(key FactorKey, d Durations, dist Distribution) string {
	switch key {
	case FactorSpeed:
		return "average first reply: " + FormatMinutes(d.AvgAnswerMinutes)
	case FactorStart:
		return "average time to start processing: " + FormatMinutes(d.AvgStartMinutes)
	case FactorClosure:
		return fmt.Sprintf("closed: %d of %d (%.1f%%)", dist.ClosedCount, dist.TotalCount, dist.CompletionRatePercent)
	case FactorBacklog:
		return fmt.Sprintf("still open: %d of %d", dist.OpenCount, dist.TotalCount)
	case FactorStale:
		return fmt.Sprintf("new requests waiting more than 3 days: %d", dist.StaleCount)
	case FactorDuration:
		return "average time to close: " + FormatMinutes(d.AvgCloseMinutes)
	default:
		return ""
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
