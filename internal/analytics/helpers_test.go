package analytics

import (
	"time"

	"github.com/spec-kit/request-analytics/internal/domain"
)

var day0 = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func after(t time.Time, minutes int) *time.Time {
	v := t.Add(time.Duration(minutes) * time.Minute)
	return &v
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.RequestStatus) *domain.RequestStatus { return &s }

func closedRequests(n int, submitted time.Time) []domain.Request {
	out := make([]domain.Request, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Request{
			ID:             "closed-" + string(rune('a'+i)),
			Status:         domain.RequestStatusClosed,
			Department:     "Roads",
			SubmissionDate: submitted,
			StartedAt:      after(submitted, 10),
			AnsweredAt:     after(submitted, 30),
			ClosedAt:       after(submitted, 60),
		})
	}
	return out
}

func staleRequests(n int, submitted time.Time) []domain.Request {
	out := make([]domain.Request, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Request{
			ID:             "new-" + string(rune('a'+i)),
			Status:         domain.RequestStatusNew,
			Department:     "Parks",
			SubmissionDate: submitted,
		})
	}
	return out
}

func dayQuery(from, to time.Time) Query {
	return Query{DateFrom: from, DateTo: to}
}
