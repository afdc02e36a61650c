package dto

// ── announcements & notifications ──

// BroadcastRequest new announcement; nil CourseCode means global
type BroadcastRequest struct {
	Title        string  `json:"title"   name:"title"   validate:"notblank,max=200"`
	Content      string  `json:"content" name:"content" validate:"notblank"`
	CourseCode   *string `json:"course_code,omitempty"`
	AssignmentID *int64  `json:"assignment_id,omitempty"`
}

// AnnouncementResponse announcement row
type AnnouncementResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Date         string  `json:"date"`
	CourseCode   *string `json:"course_code,omitempty"`
	AssignmentID *int64  `json:"assignment_id,omitempty"`
}

// Alert one-time message surfaced by the poller
type Alert struct {
	Kind    string `json:"kind"` // grades | announcements
	Count   int64  `json:"count"`
	Message string `json:"message"`
}
