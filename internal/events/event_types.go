package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportGenerated EventType = "report_generated"
	EventStaffLoggedIn   EventType = "staff_logged_in"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	StaffID   string    `json:"staff_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// ReportGeneratedPayload summarizes a freshly computed report.
type ReportGeneratedPayload struct {
	ReportID   string  `json:"report_id"`
	TotalCount int     `json:"total_count"`
	Score      int     `json:"score"`
	Grade      string  `json:"grade"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	DateFrom   string  `json:"date_from,omitempty"`
	DateTo     string  `json:"date_to,omitempty"`
	StaleCount int     `json:"stale_count"`
}

// StaffLoggedInPayload payload.
type StaffLoggedInPayload struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
