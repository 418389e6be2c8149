package analytics

import (
	"sort"
	"time"

	"github.com/spec-kit/request-analytics/internal/domain"
)

// StaleThresholdMinutes is the age a New request must exceed to count as stale.
const StaleThresholdMinutes = 3 * 24 * 60

// DepartmentShare is one department's slice of the filtered requests.
type DepartmentShare struct {
	Department string  `json:"department"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
}

// Distribution summarizes how requests spread over statuses and departments.
type Distribution struct {
	TotalCount            int                          `json:"total_count"`
	CountByStatus         map[domain.RequestStatus]int `json:"count_by_status"`
	ClosedCount           int                          `json:"closed_count"`
	OpenCount             int                          `json:"open_count"`
	StaleCount            int                          `json:"stale_count"`
	OpenRatio             float64                      `json:"open_ratio"`
	ClosureRatio          float64                      `json:"closure_ratio"`
	StaleRatio            float64                      `json:"stale_ratio"`
	CompletionRatePercent float64                      `json:"completion_rate_percent"`
	// Departments is sorted by count descending, then by label.
	Departments []DepartmentShare `json:"departments"`
}

// ComputeDistribution counts requests by status and department and flags
// stale ones relative to now.
func ComputeDistribution(requests []domain.Request, now time.Time) Distribution {
	dist := Distribution{
		TotalCount:    len(requests),
		CountByStatus: make(map[domain.RequestStatus]int, len(domain.RequestStatuses)),
	}
	for _, status := range domain.RequestStatuses {
		dist.CountByStatus[status] = 0
	}

	perDepartment := map[string]int{}
	for _, req := range requests {
		dist.CountByStatus[req.Status]++
		perDepartment[req.Department]++
		if isStale(req, now) {
			dist.StaleCount++
		}
	}

	dist.ClosedCount = dist.CountByStatus[domain.RequestStatusClosed]
	dist.OpenCount = dist.TotalCount - dist.ClosedCount
	dist.OpenRatio = ratio(dist.OpenCount, dist.TotalCount)
	dist.ClosureRatio = ratio(dist.ClosedCount, dist.TotalCount)
	dist.StaleRatio = ratio(dist.StaleCount, dist.TotalCount)
	dist.CompletionRatePercent = dist.ClosureRatio * 100

	dist.Departments = make([]DepartmentShare, 0, len(perDepartment))
	for name, count := range perDepartment {
		dist.Departments = append(dist.Departments, DepartmentShare{
			Department: name,
			Count:      count,
			Percent:    ratio(count, dist.TotalCount) * 100,
		})
	}
	sortDepartments(dist.Departments)
	return dist
}

// TopDepartments returns at most n departments, largest first. n <= 0 keeps all.
func TopDepartments(shares []DepartmentShare, n int) []DepartmentShare {
	sorted := append([]DepartmentShare(nil), shares...)
	sortDepartments(sorted)
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// CountContactsByStatus tallies contact messages; all known statuses are present.
func CountContactsByStatus(messages []domain.ContactMessage) map[domain.ContactStatus]int {
	counts := make(map[domain.ContactStatus]int, len(domain.ContactStatuses))
	for _, status := range domain.ContactStatuses {
		counts[status] = 0
	}
	for _, msg := range messages {
		counts[msg.Status]++
	}
	return counts
}

func isStale(req domain.Request, now time.Time) bool {
	if req.Status != domain.RequestStatusNew {
		return false
	}
	return elapsedMinutes(req.SubmissionDate, now) > StaleThresholdMinutes
}

func sortDepartments(shares []DepartmentShare) {
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Department < shares[j].Department
	})
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
