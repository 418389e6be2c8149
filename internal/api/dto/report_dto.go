package dto

import "time"

// ReportFilterResponse echoes the filters a report was computed with.
type ReportFilterResponse struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Seed       int     `json:"seed"`
}

// DurationResponse is a mean duration with its display label.
type DurationResponse struct {
	Minutes float64 `json:"minutes"`
	Label   string  `json:"label"`
}

// ReportDurations groups the three lifecycle means.
type ReportDurations struct {
	Start  DurationResponse `json:"start"`
	Answer DurationResponse `json:"answer"`
	Close  DurationResponse `json:"close"`
}

// DepartmentShareResponse is one row of the department distribution.
type DepartmentShareResponse struct {
	Department string  `json:"department"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
}

// DailyCountResponse is one point of the trailing series.
type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// FactorResponse explains one weighted sub-score.
type FactorResponse struct {
	Key         string  `json:"key"`
	SubScore    float64 `json:"sub_score"`
	Weight      float64 `json:"weight"`
	Partial     float64 `json:"partial"`
	Explanation string  `json:"explanation"`
}

// ReportResponse is the analytics report returned to the dashboard.
type ReportResponse struct {
	ID                    string                    `json:"id"`
	GeneratedAt           time.Time                 `json:"generated_at"`
	Cached                bool                      `json:"cached"`
	Filter                ReportFilterResponse      `json:"filter"`
	TotalCount            int                       `json:"total_count"`
	CountByStatus         map[string]int            `json:"count_by_status"`
	Departments           []DepartmentShareResponse `json:"departments"`
	Durations             ReportDurations           `json:"durations"`
	StaleCount            int                       `json:"stale_count"`
	CompletionRatePercent float64                   `json:"completion_rate_percent"`
	Trend                 []DailyCountResponse      `json:"trend"`
	Score                 int                       `json:"score"`
	Grade                 string                    `json:"grade"`
	Factors               []FactorResponse          `json:"factors"`
	Recommendations       []string                  `json:"recommendations"`
	ContactsByStatus      map[string]int            `json:"contacts_by_status"`
}

// DepartmentsResponse is the top-N department view.
type DepartmentsResponse struct {
	TotalCount  int                       `json:"total_count"`
	Departments []DepartmentShareResponse `json:"departments"`
}
