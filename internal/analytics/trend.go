package analytics

import (
	"time"

	"github.com/spec-kit/request-analytics/internal/domain"
)

// TrailingWindowDays is the length of the daily submission series.
const TrailingWindowDays = 14

const dayLayout = "2006-01-02"

// DailyCount is the number of requests submitted on one calendar day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TrailingWindow counts submissions for each of the last TrailingWindowDays
// calendar days in loc, oldest first and ending with today.
//
// It is meant to be fed the whole record set: the series is a system-wide
// trend and does not follow the report filters.
func TrailingWindow(requests []domain.Request, now time.Time, loc *time.Location) []DailyCount {
	perDay := make(map[string]int, TrailingWindowDays)
	for _, req := range requests {
		perDay[req.SubmissionDate.In(loc).Format(dayLayout)]++
	}

	y, m, d := now.In(loc).Date()
	series := make([]DailyCount, 0, TrailingWindowDays)
	for offset := TrailingWindowDays - 1; offset >= 0; offset-- {
		day := time.Date(y, m, d-offset, 0, 0, 0, 0, loc).Format(dayLayout)
		series = append(series, DailyCount{Date: day, Count: perDay[day]})
	}
	return series
}
