package dto

// ── submissions & grading ──

// SubmitRequest student upload
type SubmitRequest struct {
	AssignmentID int64  `json:"assignment_id" name:"assignment" validate:"required,gt=0"`
	SourcePath   string `json:"source_path"   name:"file"       validate:"notblank"`
}

// GradeRequest lecturer grade entry; score bounds are checked against the assignment
type GradeRequest struct {
	SubmissionID int64  `json:"submission_id" name:"submission" validate:"required,gt=0"`
	Score        int    `json:"score"         name:"score"      validate:"gte=0"`
	Feedback     string `json:"feedback"`
}

// SubmissionResponse submission row
type SubmissionResponse struct {
	ID             int64   `json:"id"`
	AssignmentID   int64   `json:"assignment_id"`
	StudentID      string  `json:"student_id"`
	StudentName    string  `json:"student_name,omitempty"`
	FilePath       string  `json:"file_path"`
	SubmissionDate string  `json:"submission_date"`
	Grade          *int    `json:"grade,omitempty"`
	Feedback       *string `json:"feedback,omitempty"`
	Published      bool    `json:"published"`
	PublishDate    *string `json:"publish_date,omitempty"`
}

// GradeResponse published grade as the student sees it
type GradeResponse struct {
	SubmissionID    int64  `json:"submission_id"`
	AssignmentID    int64  `json:"assignment_id"`
	AssignmentTitle string `json:"assignment_title"`
	CourseCode      string `json:"course_code"`
	Grade           int    `json:"grade"`
	MaxPoints       int    `json:"max_points"`
	Feedback        string `json:"feedback"`
	PublishDate     string `json:"publish_date"`
}
