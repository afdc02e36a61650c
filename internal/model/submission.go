package model

import "time"

// Submission table submissions, unique per (assignment, student).
// Grade, Feedback, PublishDate and LastNotified stay nil until set.
type Submission struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"                                          json:"id"`
	AssignmentID   int64      `gorm:"not null;uniqueIndex:uq_submissions_assignment_student"             json:"assignment_id"`
	StudentID      string     `gorm:"type:uuid;not null;uniqueIndex:uq_submissions_assignment_student;index" json:"student_id"`
	FilePath       string     `gorm:"type:varchar(500);not null"                                        json:"file_path"`
	SubmissionDate time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                                json:"submission_date"`
	Grade          *int       `json:"grade,omitempty"`
	Feedback       *string    `gorm:"type:text"                                                         json:"feedback,omitempty"`
	Published      bool       `gorm:"not null;default:false"                                            json:"published"`
	PublishDate    *time.Time `json:"publish_date,omitempty"`
	LastNotified   *time.Time `json:"last_notified,omitempty"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	Student    *User       `gorm:"foreignKey:StudentID"    json:"student,omitempty"`
}

// TableName table name
func (Submission) TableName() string { return "submissions" }

// IsGraded reports grade != nil
func (s *Submission) IsGraded() bool { return s.Grade != nil }

// PendingNotification reports whether the poller still owes the student an alert
func (s *Submission) PendingNotification() bool {
	if !s.Published || s.Grade == nil || s.PublishDate == nil {
		return false
	}
	return s.LastNotified == nil || s.LastNotified.Before(*s.PublishDate)
}
