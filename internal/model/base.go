package model

import "time"

// Role values stored in users.role
const (
	RoleStudent  = "student"
	RoleLecturer = "lecturer"
)

// SubmissionStatus derived from row existence
type SubmissionStatus string

const (
	StatusSubmitted    SubmissionStatus = "Submitted"
	StatusNotSubmitted SubmissionStatus = "Not Submitted"
)

// Timestamps audit columns shared by mutable tables
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DateOnly truncates t to midnight in its location; DATE columns hold no time part
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
