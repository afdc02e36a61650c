package model

import "time"

// Course table courses; Teacher holds the lecturer's full name
type Course struct {
	CourseCode string `gorm:"type:varchar(20);primaryKey"  json:"course_code"`
	CourseName string `gorm:"type:varchar(100);not null"   json:"course_name"`
	Teacher    string `gorm:"type:varchar(100);not null"   json:"teacher"`
	Progress   int    `gorm:"not null;default:0"           json:"progress"`
}

// TableName table name
func (Course) TableName() string { return "courses" }

// Enrollment table enrollments, unique per (student, course)
type Enrollment struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"                                    json:"id"`
	StudentID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_enrollments_student_course" json:"student_id"`
	CourseCode     string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_enrollments_student_course" json:"course_code"`
	EnrollmentDate time.Time `gorm:"type:date;not null"                                          json:"enrollment_date"`

	Course *Course `gorm:"foreignKey:CourseCode;references:CourseCode" json:"course,omitempty"`
}

// TableName table name
func (Enrollment) TableName() string { return "enrollments" }

// CourseMaterial table course_materials
type CourseMaterial struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"             json:"id"`
	Title      string    `gorm:"type:varchar(200);not null"           json:"title"`
	FilePath   string    `gorm:"type:varchar(500);not null"           json:"file_path"`
	CourseCode string    `gorm:"type:varchar(20);not null"            json:"course_code"`
	UploadDate time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"upload_date"`
}

// TableName table name
func (CourseMaterial) TableName() string { return "course_materials" }
