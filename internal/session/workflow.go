package session

import (
	"bytes"
	"context"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
)

// ── student workflow ──

// Enroll enrolls the session's student
func (s *Session) Enroll(ctx context.Context, courseCode string) (*dto.EnrollmentResponse, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	return s.svc.Enrollment.Enroll(ctx, s.User.ID, courseCode)
}

// MyCourses enrolled courses
func (s *Session) MyCourses(ctx context.Context) ([]dto.EnrollmentResponse, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	return s.svc.Enrollment.ListEnrolled(ctx, s.User.ID)
}

// AvailableCourses courses not yet enrolled in
func (s *Session) AvailableCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	return s.svc.Enrollment.ListAvailable(ctx, s.User.ID)
}

// MyAssignments assignments of enrolled courses with submission status
func (s *Session) MyAssignments(ctx context.Context) ([]dto.StudentAssignmentResponse, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	return s.svc.Assignment.ListForStudent(ctx, s.User.ID)
}

// Submit uploads a file for an assignment
func (s *Session) Submit(ctx context.Context, assignmentID int64, sourcePath string) (*dto.SubmissionResponse, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	return s.svc.Submission.Submit(ctx, s.User.ID, &dto.SubmitRequest{AssignmentID: assignmentID, SourcePath: sourcePath})
}

// Unsubmit withdraws a submission
func (s *Session) Unsubmit(ctx context.Context, assignmentID int64) error {
	if err := s.requireStudent(); err != nil {
		return err
	}
	return s.svc.Submission.Unsubmit(ctx, assignmentID, s.User.ID)
}

// Status submission status for one assignment
func (s *Session) Status(ctx context.Context, assignmentID int64) (model.SubmissionStatus, error) {
	if err := s.requireStudent(); err != nil {
		return "", err
	}
	return s.svc.Submission.StatusFor(ctx, s.User.ID, assignmentID)
}

// MyGrades published grades
func (s *Session) MyGrades(ctx context.Context) ([]dto.GradeResponse, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	return s.svc.Submission.ListPublishedGrades(ctx, s.User.ID)
}

// MyAnnouncements global and enrolled-course announcements
func (s *Session) MyAnnouncements(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	return s.svc.Announcement.ListForStudent(ctx, s.User.ID)
}

// CheckNow runs both notification checks once, outside the pollers
func (s *Session) CheckNow(ctx context.Context) ([]dto.Alert, error) {
	if err := s.requireStudent(); err != nil {
		return nil, err
	}
	var alerts []dto.Alert
	g, err := s.svc.Notification.CheckGrades(ctx, s.User.ID)
	if err != nil {
		return nil, err
	}
	if g != nil {
		alerts = append(alerts, *g)
	}
	a, err := s.svc.Notification.CheckAnnouncements(ctx, s.User.ID)
	if err != nil {
		return alerts, err
	}
	if a != nil {
		alerts = append(alerts, *a)
	}
	return alerts, nil
}

// MyCalendar due dates of enrolled courses as an iCalendar file
func (s *Session) MyCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	if err := s.requireStudent(); err != nil {
		return nil, "", err
	}
	return s.svc.Calendar.StudentCalendar(ctx, s.User.ID)
}

// ── lecturer workflow ──

// TeachingCourses courses owned by the lecturer
func (s *Session) TeachingCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	if err := s.requireLecturer(); err != nil {
		return nil, err
	}
	return s.svc.Course.ListForLecturer(ctx, s.User.FullName)
}

// StudentCount distinct students across the lecturer's courses
func (s *Session) StudentCount(ctx context.Context) (int64, error) {
	if err := s.requireLecturer(); err != nil {
		return 0, err
	}
	return s.svc.Course.CountStudents(ctx, s.User.FullName)
}

// CreateCourse adds a course taught by the session's lecturer
func (s *Session) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.requireLecturer(); err != nil {
		return nil, err
	}
	return s.svc.Course.Create(ctx, s.User.FullName, req)
}

// CreateAssignment creates an assignment and its announcement
func (s *Session) CreateAssignment(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := s.requireCourseOwner(ctx, req.CourseCode); err != nil {
		return nil, err
	}
	return s.svc.Assignment.Create(ctx, req)
}

// UploadMaterial uploads a course material and announces it
func (s *Session) UploadMaterial(ctx context.Context, req *dto.UploadMaterialRequest) (*dto.MaterialResponse, error) {
	if err := s.requireCourseOwner(ctx, req.CourseCode); err != nil {
		return nil, err
	}
	return s.svc.Material.Upload(ctx, req)
}

// DeleteMaterial removes a material
func (s *Session) DeleteMaterial(ctx context.Context, id int64) error {
	if err := s.requireLecturer(); err != nil {
		return err
	}
	m, err := s.svc.Material.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireCourseOwner(ctx, m.CourseCode); err != nil {
		return err
	}
	return s.svc.Material.Delete(ctx, id)
}

// Announce broadcasts a manual announcement; course-scoped ones need ownership
func (s *Session) Announce(ctx context.Context, req *dto.BroadcastRequest) (*dto.AnnouncementResponse, error) {
	if err := s.requireLecturer(); err != nil {
		return nil, err
	}
	if req.CourseCode != nil {
		if err := s.requireCourseOwner(ctx, *req.CourseCode); err != nil {
			return nil, err
		}
	}
	if req.AssignmentID != nil {
		if err := s.requireAssignmentOwner(ctx, *req.AssignmentID); err != nil {
			return nil, err
		}
	}
	return s.svc.Announcement.Broadcast(ctx, req)
}

// Submissions lists submissions of an assignment
func (s *Session) Submissions(ctx context.Context, assignmentID int64) ([]dto.SubmissionResponse, error) {
	if err := s.requireAssignmentOwner(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.svc.Submission.ListByAssignment(ctx, assignmentID)
}

// Grade sets grade and feedback
func (s *Session) Grade(ctx context.Context, req *dto.GradeRequest) (*dto.SubmissionResponse, error) {
	if err := s.requireSubmissionOwner(ctx, req.SubmissionID); err != nil {
		return nil, err
	}
	return s.svc.Grading.Grade(ctx, req)
}

// Publish releases one graded submission
func (s *Session) Publish(ctx context.Context, submissionID int64) error {
	if err := s.requireSubmissionOwner(ctx, submissionID); err != nil {
		return err
	}
	return s.svc.Grading.Publish(ctx, submissionID)
}

// PublishAll releases every graded submission of a course
func (s *Session) PublishAll(ctx context.Context, courseCode string) (int64, error) {
	if err := s.requireCourseOwner(ctx, courseCode); err != nil {
		return 0, err
	}
	return s.svc.Grading.PublishAllForCourse(ctx, courseCode)
}

// UpdateProgress sets course progress
func (s *Session) UpdateProgress(ctx context.Context, courseCode string, progress int) error {
	if err := s.requireCourseOwner(ctx, courseCode); err != nil {
		return err
	}
	return s.svc.Course.UpdateProgress(ctx, courseCode, progress)
}

// ExportGradebook builds the course workbook
func (s *Session) ExportGradebook(ctx context.Context, courseCode string) (*bytes.Buffer, string, error) {
	if err := s.requireCourseOwner(ctx, courseCode); err != nil {
		return nil, "", err
	}
	return s.svc.Export.ExportGradebook(ctx, courseCode)
}

// ── course content, either role ──

// Courses the full catalogue
func (s *Session) Courses(ctx context.Context) ([]dto.CourseResponse, error) {
	return s.svc.Course.List(ctx)
}

// CourseAssignments assignments of one course
func (s *Session) CourseAssignments(ctx context.Context, courseCode string) ([]dto.AssignmentResponse, error) {
	if err := s.requireCourseAccess(ctx, courseCode); err != nil {
		return nil, err
	}
	return s.svc.Assignment.ListByCourse(ctx, courseCode)
}

// CourseAnnouncements announcements of one course
func (s *Session) CourseAnnouncements(ctx context.Context, courseCode string) ([]dto.AnnouncementResponse, error) {
	if err := s.requireCourseAccess(ctx, courseCode); err != nil {
		return nil, err
	}
	return s.svc.Announcement.ListForCourse(ctx, courseCode)
}

// CourseMaterials materials of one course
func (s *Session) CourseMaterials(ctx context.Context, courseCode string) ([]dto.MaterialResponse, error) {
	if err := s.requireCourseAccess(ctx, courseCode); err != nil {
		return nil, err
	}
	return s.svc.Material.ListByCourse(ctx, courseCode)
}

// DownloadMaterial copies a material file into destDir
func (s *Session) DownloadMaterial(ctx context.Context, id int64, destDir string) (string, error) {
	m, err := s.svc.Material.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.requireCourseAccess(ctx, m.CourseCode); err != nil {
		return "", err
	}
	return s.svc.Material.Download(ctx, id, destDir)
}
