package domain

import "time"

// ContactStatus enumerates states for contact-form messages.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "New"
	ContactStatusInProgress ContactStatus = "InProgress"
	ContactStatusClosed     ContactStatus = "Closed"
)

// ContactStatuses lists every contact message status.
var ContactStatuses = []ContactStatus{
	ContactStatusNew,
	ContactStatusInProgress,
	ContactStatusClosed,
}

// Valid reports whether s is a known contact message status.
func (s ContactStatus) Valid() bool {
	for _, candidate := range ContactStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ContactMessage is a free-form message sent through the contact form.
type ContactMessage struct {
	ID             string        `json:"id"`
	Status         ContactStatus `json:"status"`
	SubmissionDate time.Time     `json:"submission_date"`
	Subject        string        `json:"subject"`
	Message        string        `json:"message"`
}
