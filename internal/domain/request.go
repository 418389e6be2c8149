package domain

import "time"

// RequestStatus enumerates lifecycle states for citizen requests.
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "New"
	RequestStatusInProgress RequestStatus = "InProgress"
	RequestStatusAnswered   RequestStatus = "Answered"
	RequestStatusClosed     RequestStatus = "Closed"
)

// RequestStatuses lists every request status in lifecycle order.
var RequestStatuses = []RequestStatus{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusAnswered,
	RequestStatusClosed,
}

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	for _, candidate := range RequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Request is a citizen-submitted inquiry or complaint.
// Lifecycle timestamps are set by staff and are not checked against Status.
type Request struct {
	ID             string        `json:"id"`
	Status         RequestStatus `json:"status"`
	Department     string        `json:"department"`
	SubmissionDate time.Time     `json:"submission_date"`
	StartedAt      *time.Time    `json:"started_at,omitempty"`
	AnsweredAt     *time.Time    `json:"answered_at,omitempty"`
	ClosedAt       *time.Time    `json:"closed_at,omitempty"`
}
