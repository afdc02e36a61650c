package model

import "time"

// DefaultMaxPoints applies when a lecturer leaves max points empty
const DefaultMaxPoints = 100

// Assignment table assignments
type Assignment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	Title           string    `gorm:"type:varchar(200);not null"         json:"title"`
	Description     string    `gorm:"type:text"                          json:"description"`
	Instructions    string    `gorm:"type:text"                          json:"instructions"`
	DueDate         time.Time `gorm:"type:date;not null"                 json:"due_date"`
	CourseCode      string    `gorm:"type:varchar(20);not null;index"    json:"course_code"`
	MaxPoints       int       `gorm:"not null;default:100"               json:"max_points"`
	GradingCriteria string    `gorm:"type:text"                          json:"grading_criteria"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName table name
func (Assignment) TableName() string { return "assignments" }
