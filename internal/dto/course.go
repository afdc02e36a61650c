package dto

// ── courses & enrollment ──

// CourseResponse course row
type CourseResponse struct {
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Teacher    string `json:"teacher"`
	Progress   int    `json:"progress"`
}

// CreateCourseRequest lecturer adds a course they teach
type CreateCourseRequest struct {
	CourseCode string `json:"course_code" name:"course code" validate:"notblank,max=20"`
	CourseName string `json:"course_name" name:"course name" validate:"notblank,max=100"`
}

// EnrollmentResponse enrollment row
type EnrollmentResponse struct {
	ID             int64           `json:"id"`
	StudentID      string          `json:"student_id"`
	CourseCode     string          `json:"course_code"`
	EnrollmentDate string          `json:"enrollment_date"`
	Course         *CourseResponse `json:"course,omitempty"`
}

// UploadMaterialRequest material upload
type UploadMaterialRequest struct {
	CourseCode string `json:"course_code" name:"course code" validate:"notblank"`
	Title      string `json:"title"       name:"title"       validate:"notblank,max=200"`
	SourcePath string `json:"source_path" name:"file"        validate:"notblank"`
}

// MaterialResponse material row
type MaterialResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	FilePath   string `json:"file_path"`
	CourseCode string `json:"course_code"`
	UploadDate string `json:"upload_date"`
}
