package session

import (
	"context"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/service"
)

// Lecturer authority is scoped to courses whose teacher is the session's full name.
// Students see course content only for courses they are enrolled in.

func (s *Session) requireCourseOwner(ctx context.Context, courseCode string) error {
	if err := s.requireLecturer(); err != nil {
		return err
	}
	course, err := s.svc.Course.Get(ctx, courseCode)
	if err != nil {
		return err
	}
	if course.Teacher != s.User.FullName {
		return ErrForbidden.WithField("course_code", courseCode)
	}
	return nil
}

func (s *Session) requireAssignmentOwner(ctx context.Context, assignmentID int64) error {
	if err := s.requireLecturer(); err != nil {
		return err
	}
	a, err := s.svc.Assignment.Get(ctx, assignmentID)
	if err != nil {
		return err
	}
	return s.requireCourseOwner(ctx, a.CourseCode)
}

func (s *Session) requireSubmissionOwner(ctx context.Context, submissionID int64) error {
	if err := s.requireLecturer(); err != nil {
		return err
	}
	sub, err := s.svc.Submission.Get(ctx, submissionID)
	if err != nil {
		return err
	}
	return s.requireAssignmentOwner(ctx, sub.AssignmentID)
}

// requireCourseAccess: owner for lecturers, enrollment for students
func (s *Session) requireCourseAccess(ctx context.Context, courseCode string) error {
	switch s.User.Role {
	case model.RoleLecturer:
		return s.requireCourseOwner(ctx, courseCode)
	case model.RoleStudent:
		ok, err := s.svc.Enrollment.IsEnrolled(ctx, s.User.ID, courseCode)
		if err != nil {
			return err
		}
		if !ok {
			return service.ErrNotEnrolled.WithField("course_code", courseCode)
		}
		return nil
	default:
		return ErrForbidden.WithField("role", s.User.Role)
	}
}
