package dto

// ── assignments ──

// CreateAssignmentRequest new assignment; MaxPoints 0 means the default
type CreateAssignmentRequest struct {
	CourseCode      string `json:"course_code"      name:"course code" validate:"notblank"`
	Title           string `json:"title"            name:"title"       validate:"notblank,max=200"`
	Description     string `json:"description"`
	Instructions    string `json:"instructions"`
	DueDate         string `json:"due_date"         name:"due date"    validate:"required,datetime=2006-01-02"`
	MaxPoints       int    `json:"max_points"       name:"max points"  validate:"gte=0"`
	GradingCriteria string `json:"grading_criteria"`
}

// AssignmentResponse assignment row
type AssignmentResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Instructions    string `json:"instructions"`
	DueDate         string `json:"due_date"`
	CourseCode      string `json:"course_code"`
	MaxPoints       int    `json:"max_points"`
	GradingCriteria string `json:"grading_criteria"`
}

// StudentAssignmentResponse assignment plus the caller's submission status
type StudentAssignmentResponse struct {
	AssignmentResponse
	Status string `json:"status"`
}
