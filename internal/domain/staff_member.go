package domain

import "time"

// StaffRole enumerates internal operator roles.
type StaffRole string

const (
	StaffRoleAgent   StaffRole = "AGENT"
	StaffRoleAnalyst StaffRole = "ANALYST"
	StaffRoleAdmin   StaffRole = "ADMIN"
)

// StaffMember models a municipal employee with portal access.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Department   *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
