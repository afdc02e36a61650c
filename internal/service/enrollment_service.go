package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
)

// ErrAlreadyEnrolled duplicate (student, course) pair
var ErrAlreadyEnrolled = apperr.New(apperr.KindConflict, "already enrolled")

// EnrollmentService enrollment ledger. There is no unenroll.
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseCode string) (*dto.EnrollmentResponse, error)
	ListEnrolled(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error)
	ListAvailable(ctx context.Context, studentID string) ([]dto.CourseResponse, error)
	IsEnrolled(ctx context.Context, studentID, courseCode string) (bool, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewEnrollmentService creates an EnrollmentService
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Enroll ──────────────────────

func (s *enrollmentService) Enroll(ctx context.Context, studentID, courseCode string) (*dto.EnrollmentResponse, error) {
	course, err := getCourse(ctx, s.repo, courseCode)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.Enrollment.Exists(ctx, studentID, courseCode)
	if err != nil {
		s.logger.Error("check enrollment failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	if exists {
		return nil, ErrAlreadyEnrolled.WithField("course_code", courseCode)
	}

	enrollment := &model.Enrollment{
		StudentID:      studentID,
		CourseCode:     courseCode,
		EnrollmentDate: model.DateOnly(s.now()),
	}
	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		// lost a race with a concurrent enroll of the same pair
		if apperr.IsUniqueViolation(err) {
			return nil, ErrAlreadyEnrolled.WithField("course_code", courseCode)
		}
		s.logger.Error("create enrollment failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	enrollment.Course = course

	s.logger.Info("student enrolled",
		zap.String("student_id", studentID),
		zap.String("course_code", courseCode),
	)

	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *enrollmentService) ListEnrolled(ctx context.Context, studentID string) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list enrollments failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		result = append(result, toEnrollmentResponse(&enrollments[i]))
	}
	return result, nil
}

func (s *enrollmentService) ListAvailable(ctx context.Context, studentID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListAvailableForStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list available courses failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	return toCourseResponses(courses), nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, studentID, courseCode string) (bool, error) {
	ok, err := s.repo.Enrollment.Exists(ctx, studentID, courseCode)
	if err != nil {
		s.logger.Error("check enrollment failed", zap.Error(err))
		return false, apperr.Classify(err)
	}
	return ok, nil
}

// ── helpers ──

func toEnrollmentResponse(e *model.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseCode:     e.CourseCode,
		EnrollmentDate: e.EnrollmentDate.Format(dateLayout),
	}
	if e.Course != nil {
		c := toCourseResponse(e.Course)
		resp.Course = &c
	}
	return resp
}
