package analytics

import (
	"time"

	"github.com/spec-kit/request-analytics/internal/domain"
)

// Report is the complete analytics output for one query.
type Report struct {
	Distribution
	Durations
	AvgStartLabel    string                       `json:"avg_start_label"`
	AvgAnswerLabel   string                       `json:"avg_answer_label"`
	AvgCloseLabel    string                       `json:"avg_close_label"`
	Trend            []DailyCount                 `json:"trend"`
	Score            Score                        `json:"score"`
	Recommendations  []string                     `json:"recommendations"`
	ContactsByStatus map[domain.ContactStatus]int `json:"contacts_by_status"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

// Compute runs the whole pipeline. Status and department KPIs, durations and
// the score follow q; the trend is built from every request; contact counts
// cover every contact message.
func Compute(requests []domain.Request, contacts []domain.ContactMessage, q Query, now time.Time, loc *time.Location) Report {
	if loc == nil {
		loc = time.UTC
	}
	filtered := FilterRequests(requests, q, loc)
	durations := ComputeDurations(filtered)
	dist := ComputeDistribution(filtered, now)
	score := ComputeScore(durations, dist)

	return Report{
		Distribution:     dist,
		Durations:        durations,
		AvgStartLabel:    FormatMinutes(durations.AvgStartMinutes),
		AvgAnswerLabel:   FormatMinutes(durations.AvgAnswerMinutes),
		AvgCloseLabel:    FormatMinutes(durations.AvgCloseMinutes),
		Trend:            TrailingWindow(requests, now, loc),
		Score:            score,
		Recommendations:  Recommend(score, dist.TotalCount, q.Seed),
		ContactsByStatus: CountContactsByStatus(contacts),
		GeneratedAt:      now,
	}
}
