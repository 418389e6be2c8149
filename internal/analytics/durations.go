package analytics

import (
	"time"

	"github.com/spec-kit/request-analytics/internal/domain"
)

// Durations holds mean elapsed minutes from submission to each milestone.
type Durations struct {
	AvgStartMinutes  float64 `json:"avg_start_minutes"`
	AvgAnswerMinutes float64 `json:"avg_answer_minutes"`
	AvgCloseMinutes  float64 `json:"avg_close_minutes"`
}

// ComputeDurations averages the three lifecycle milestones over requests.
func ComputeDurations(requests []domain.Request) Durations {
	return Durations{
		AvgStartMinutes:  MeanMinutes(requests, func(r domain.Request) *time.Time { return r.StartedAt }),
		AvgAnswerMinutes: MeanMinutes(requests, func(r domain.Request) *time.Time { return r.AnsweredAt }),
		AvgCloseMinutes:  MeanMinutes(requests, func(r domain.Request) *time.Time { return r.ClosedAt }),
	}
}

// MeanMinutes averages the minutes between submission and the milestone
// returned by target. Requests without the milestone are skipped. Negative
// spans count as zero. With no matching request the mean is 0.
func MeanMinutes(requests []domain.Request, target func(domain.Request) *time.Time) float64 {
	var (
		sum   float64
		count int
	)
	for _, req := range requests {
		at := target(req)
		if at == nil {
			continue
		}
		sum += elapsedMinutes(req.SubmissionDate, *at)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func elapsedMinutes(from, to time.Time) float64 {
	minutes := to.Sub(from).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}
