// Package analytics turns request records into lifecycle KPIs, a composite
// health score and a list of recommendations.
//
// Every function in this package is pure: the current time and the calendar
// location are passed in by the caller and nothing is read from the
// environment.
package analytics

import (
	"time"

	"github.com/spec-kit/request-analytics/internal/domain"
)

// Query selects the requests a report is computed over.
type Query struct {
	// DateFrom and DateTo are calendar dates; only their year, month and day
	// are used. A zero value leaves that side of the range open.
	DateFrom   time.Time
	DateTo     time.Time
	Department *string
	Status     *domain.RequestStatus
	// Seed rotates the explanatory sentence appended to recommendations.
	Seed int
}

// Bounds returns the inclusive instants the date range covers in loc:
// DateFrom at 00:00:00 and DateTo at 23:59:59.
func (q Query) Bounds(loc *time.Location) (from, to time.Time) {
	if !q.DateFrom.IsZero() {
		y, m, d := q.DateFrom.Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	if !q.DateTo.IsZero() {
		y, m, d := q.DateTo.Date()
		to = time.Date(y, m, d, 23, 59, 59, 0, loc)
	}
	return from, to
}

// FilterRequests returns the requests submitted inside the query's date range
// that also match the optional department and status filters.
func FilterRequests(requests []domain.Request, q Query, loc *time.Location) []domain.Request {
	from, to := q.Bounds(loc)
	filtered := make([]domain.Request, 0, len(requests))
	for _, req := range requests {
		if !from.IsZero() && req.SubmissionDate.Before(from) {
			continue
		}
		if !to.IsZero() && req.SubmissionDate.After(to) {
			continue
		}
		if q.Department != nil && req.Department != *q.Department {
			continue
		}
		if q.Status != nil && req.Status != *q.Status {
			continue
		}
		filtered = append(filtered, req)
	}
	return filtered
}
