package analytics

import (
	"fmt"
	"math"
)

const (
	minutesPerHour  = 60
	minutesPerDay   = 24 * minutesPerHour
	minutesPerMonth = 30 * minutesPerDay
)

// FormatMinutes renders a duration in minutes the way dashboards display it.
func FormatMinutes(m float64) string {
	switch {
	case m <= 0:
		return "—"
	case m < minutesPerHour:
		return fmt.Sprintf("%d minute(s)", int(math.Round(m)))
	case m < minutesPerDay:
		return fmt.Sprintf("%.1f hour(s)", m/minutesPerHour)
	case m < minutesPerMonth:
		return fmt.Sprintf("%.1f day(s)", m/minutesPerDay)
	default:
		return fmt.Sprintf("%.1f month(s)", m/minutesPerMonth)
	}
}
