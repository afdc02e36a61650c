package model

import "time"

// Announcement table announcements. CourseCode nil means global.
type Announcement struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	Title        string    `gorm:"type:varchar(200);not null"         json:"title"`
	Content      string    `gorm:"type:text;not null"                 json:"content"`
	Date         time.Time `gorm:"type:date;not null"                 json:"date"`
	AssignmentID *int64    `gorm:"index"                              json:"assignment_id,omitempty"`
	CourseCode   *string   `gorm:"type:varchar(20);index"             json:"course_code,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName table name
func (Announcement) TableName() string { return "announcements" }

// IsGlobal reports a global announcement
func (a *Announcement) IsGlobal() bool { return a.CourseCode == nil }

// StudentNotification table student_notifications, the per-student announcement watermark
type StudentNotification struct {
	StudentID   string    `gorm:"type:uuid;primaryKey" json:"student_id"`
	LastChecked time.Time `gorm:"not null"             json:"last_checked"`
}

// TableName table name
func (StudentNotification) TableName() string { return "student_notifications" }
