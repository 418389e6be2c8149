package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-analytics/internal/domain"
)

func TestCompute_AllClosedQuickly(t *testing.T) {
	now := day0.Add(24 * time.Hour)
	requests := closedRequests(10, day0)

	report := Compute(requests, nil, dayQuery(day0, now), now, time.UTC)

	assert.Equal(t, 10, report.TotalCount)
	assert.InDelta(t, 1.0, report.ClosureRatio, 1e-9)
	assert.Zero(t, report.OpenRatio)
	assert.Zero(t, report.StaleRatio)
	assert.InDelta(t, 100, report.CompletionRatePercent, 1e-9)

	sub := report.Score.SubScores
	assert.InDelta(t, 92.5, sub.Speed, 1e-9)
	assert.InDelta(t, 98, sub.Start, 1e-9)
	assert.InDelta(t, 100, sub.Closure, 1e-9)
	assert.InDelta(t, 100, sub.Backlog, 1e-9)
	assert.InDelta(t, 100, sub.Stale, 1e-9)
	assert.InDelta(t, 99.67, sub.Duration, 0.01)

	assert.Equal(t, 98, report.Score.Value)
	assert.Equal(t, GradeExcellent, report.Score.Grade)
	assert.Equal(t, []string{maintainRecommendation, RotatingNote(0)}, report.Recommendations)
	assert.Equal(t, "10 minute(s)", report.AvgStartLabel)
	assert.Equal(t, "30 minute(s)", report.AvgAnswerLabel)
	assert.Equal(t, "1.0 hour(s)", report.AvgCloseLabel)
}

func TestCompute_AllStaleNew(t *testing.T) {
	now := day0
	submitted := now.Add(-5 * 24 * time.Hour)
	requests := staleRequests(10, submitted)

	report := Compute(requests, nil, dayQuery(submitted, now), now, time.UTC)

	assert.Equal(t, 10, report.StaleCount)
	assert.InDelta(t, 1.0, report.StaleRatio, 1e-9)
	assert.Zero(t, report.AvgStartMinutes)
	assert.Zero(t, report.AvgAnswerMinutes)
	assert.Zero(t, report.AvgCloseMinutes)
	assert.Equal(t, SubScores{Speed: 50, Start: 50, Closure: 0, Backlog: 0, Stale: 0, Duration: 60}, report.Score.SubScores)
	assert.Equal(t, 21, report.Score.Value)
	assert.Equal(t, GradeCritical, report.Score.Grade)
	assert.Len(t, report.Recommendations, len(recommendationRules)+1)
	assert.Equal(t, "—", report.AvgAnswerLabel)
}

func TestCompute_EmptyRange(t *testing.T) {
	now := day0
	requests := closedRequests(3, day0.Add(-60*24*time.Hour))
	from := day0.Add(-7 * 24 * time.Hour)

	report := Compute(requests, nil, dayQuery(from, now), now, time.UTC)

	assert.Zero(t, report.TotalCount)
	assert.Zero(t, report.OpenRatio)
	assert.Zero(t, report.ClosureRatio)
	assert.Zero(t, report.StaleRatio)
	assert.Zero(t, report.AvgStartMinutes)
	assert.Zero(t, report.AvgAnswerMinutes)
	assert.Zero(t, report.AvgCloseMinutes)
	assert.False(t, math.IsNaN(float64(report.Score.Value)))
	assert.Equal(t, 56, report.Score.Value)
	assert.Equal(t, GradeAcceptable, report.Score.Grade)
	assert.Equal(t, []string{noDataRecommendation, RotatingNote(0)}, report.Recommendations)
	assert.Len(t, report.Trend, TrailingWindowDays)
}

func TestCompute_NilInputs(t *testing.T) {
	report := Compute(nil, nil, Query{}, day0, nil)

	assert.Zero(t, report.TotalCount)
	assert.Len(t, report.Trend, TrailingWindowDays)
	assert.Len(t, report.ContactsByStatus, len(domain.ContactStatuses))
	assert.GreaterOrEqual(t, report.Score.Value, 0)
	assert.LessOrEqual(t, report.Score.Value, 100)
}

func mixedRequests(now time.Time) []domain.Request {
	return []domain.Request{
		{ID: "1", Status: domain.RequestStatusNew, Department: "Roads", SubmissionDate: now.Add(-6 * 24 * time.Hour)},
		{ID: "2", Status: domain.RequestStatusInProgress, Department: "Roads", SubmissionDate: now.Add(-2 * 24 * time.Hour), StartedAt: after(now.Add(-2*24*time.Hour), 90)},
		{ID: "3", Status: domain.RequestStatusAnswered, Department: "Parks", SubmissionDate: now.Add(-3 * 24 * time.Hour), StartedAt: after(now.Add(-3*24*time.Hour), 30), AnsweredAt: after(now.Add(-3*24*time.Hour), 300)},
		{ID: "4", Status: domain.RequestStatusClosed, Department: "Water", SubmissionDate: now.Add(-20 * 24 * time.Hour), ClosedAt: after(now.Add(-20*24*time.Hour), 5*24*60)},
		{ID: "5", Status: domain.RequestStatusClosed, Department: "Parks", SubmissionDate: now.Add(-time.Hour), AnsweredAt: after(now.Add(-time.Hour), 20), ClosedAt: after(now.Add(-time.Hour), 40)},
	}
}

func TestCompute_Properties(t *testing.T) {
	now := day0
	requests := mixedRequests(now)
	from := now.Add(-30 * 24 * time.Hour)

	queries := []Query{
		dayQuery(from, now),
		{DateFrom: from, DateTo: now, Department: strPtr("Roads")},
		{DateFrom: from, DateTo: now, Status: statusPtr(domain.RequestStatusClosed)},
		{DateFrom: now, DateTo: now},
		{Department: strPtr("Nobody")},
	}

	baseline := Compute(requests, nil, Query{}, now, time.UTC).Trend

	for _, q := range queries {
		report := Compute(requests, nil, q, now, time.UTC)

		var statusSum int
		for _, status := range domain.RequestStatuses {
			statusSum += report.CountByStatus[status]
		}
		assert.Equal(t, report.TotalCount, statusSum)
		assert.GreaterOrEqual(t, report.Score.Value, 0)
		assert.LessOrEqual(t, report.Score.Value, 100)
		if report.TotalCount > 0 {
			assert.InDelta(t, 1, report.ClosureRatio+report.OpenRatio, 1e-9)
			var pct float64
			for _, share := range report.Departments {
				pct += share.Percent
			}
			assert.InDelta(t, 100, pct, 1e-6)
		}
		assert.Equal(t, baseline, report.Trend, "trend must ignore filters")
	}
}

func TestCompute_SeedOnlyRotatesNote(t *testing.T) {
	now := day0
	requests := mixedRequests(now)

	first := Compute(requests, nil, Query{Seed: 0}, now, time.UTC)
	second := Compute(requests, nil, Query{Seed: 1}, now, time.UTC)

	assert.Equal(t, first.Score, second.Score)
	require.Equal(t, len(first.Recommendations), len(second.Recommendations))
	last := len(first.Recommendations) - 1
	assert.Equal(t, first.Recommendations[:last], second.Recommendations[:last])
	assert.NotEqual(t, first.Recommendations[last], second.Recommendations[last])
}

func TestCompute_Idempotent(t *testing.T) {
	now := day0
	requests := mixedRequests(now)
	contacts := []domain.ContactMessage{{ID: "c1", Status: domain.ContactStatusNew}}
	q := Query{Department: strPtr("Parks"), Seed: 4}

	assert.Equal(t, Compute(requests, contacts, q, now, time.UTC), Compute(requests, contacts, q, now, time.UTC))
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	now := day0
	requests := mixedRequests(now)
	snapshot := append([]domain.Request(nil), requests...)

	Compute(requests, nil, Query{Status: statusPtr(domain.RequestStatusNew)}, now, time.UTC)

	assert.Equal(t, snapshot, requests)
}
