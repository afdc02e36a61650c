package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/validate"
)

var (
	ErrCourseNotFound   = apperr.New(apperr.KindNotFound, "course not found")
	ErrCourseExists     = apperr.New(apperr.KindConflict, "course code already exists")
	ErrProgressOutRange = apperr.New(apperr.KindValidation, "progress must be between 0 and 100")
)

// CourseService course catalogue and lecturer views
type CourseService interface {
	// Create adds a course owned by teacher, starting at progress 0
	Create(ctx context.Context, teacher string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	Get(ctx context.Context, code string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	ListForLecturer(ctx context.Context, fullName string) ([]dto.CourseResponse, error)
	CountStudents(ctx context.Context, fullName string) (int64, error)
	UpdateProgress(ctx context.Context, code string, progress int) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService creates a CourseService
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, teacher string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	req.CourseCode = strings.TrimSpace(req.CourseCode)
	req.CourseName = strings.TrimSpace(req.CourseName)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	course := &model.Course{
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		Teacher:    teacher,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrCourseExists.WithField("course_code", req.CourseCode)
		}
		s.logger.Error("create course failed", zap.String("course_code", req.CourseCode), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	s.logger.Info("course created",
		zap.String("course_code", course.CourseCode),
		zap.String("teacher", teacher),
	)

	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) Get(ctx context.Context, code string) (*dto.CourseResponse, error) {
	course, err := getCourse(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) ListForLecturer(ctx context.Context, fullName string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByTeacher(ctx, fullName)
	if err != nil {
		s.logger.Error("list lecturer courses failed", zap.String("teacher", fullName), zap.Error(err))
		return nil, apperr.Classify(err)
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) CountStudents(ctx context.Context, fullName string) (int64, error) {
	n, err := s.repo.Course.CountStudentsByTeacher(ctx, fullName)
	if err != nil {
		s.logger.Error("count students failed", zap.String("teacher", fullName), zap.Error(err))
		return 0, apperr.Classify(err)
	}
	return n, nil
}

func (s *courseService) UpdateProgress(ctx context.Context, code string, progress int) error {
	if progress < 0 || progress > 100 {
		return ErrProgressOutRange.WithField("progress", progress)
	}
	if _, err := getCourse(ctx, s.repo, code); err != nil {
		return err
	}
	if err := s.repo.Course.UpdateProgress(ctx, code, progress); err != nil {
		s.logger.Error("update progress failed", zap.String("course_code", code), zap.Error(err))
		return apperr.Classify(err)
	}
	return nil
}

// ── helpers ──

func getCourse(ctx context.Context, repo *repository.Repository, code string) (*model.Course, error) {
	course, err := repo.Course.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound.WithField("course_code", code)
		}
		return nil, apperr.Classify(err)
	}
	return course, nil
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		CourseCode: c.CourseCode,
		CourseName: c.CourseName,
		Teacher:    c.Teacher,
		Progress:   c.Progress,
	}
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result
}
