package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/validate"
)

// ErrAssignmentNotFound unknown assignment id
var ErrAssignmentNotFound = apperr.New(apperr.KindNotFound, "assignment not found")

// AssignmentService assignment creation and listing
type AssignmentService interface {
	Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	Get(ctx context.Context, id int64) (*dto.AssignmentResponse, error)
	ListByCourse(ctx context.Context, courseCode string) ([]dto.AssignmentResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.StudentAssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService creates an AssignmentService
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create inserts the assignment and its course announcement in one transaction
func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, validate.ErrInvalidInput.WithField("due date", "must be YYYY-MM-DD")
	}
	maxPoints := req.MaxPoints
	if maxPoints == 0 {
		maxPoints = model.DefaultMaxPoints
	}

	if _, err := getCourse(ctx, s.repo, req.CourseCode); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		Title:           req.Title,
		Description:     req.Description,
		Instructions:    req.Instructions,
		DueDate:         dueDate,
		CourseCode:      req.CourseCode,
		MaxPoints:       maxPoints,
		GradingCriteria: req.GradingCriteria,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Assignment.Create(ctx, assignment); err != nil {
			return err
		}
		title, content := newAssignmentAnnouncement(assignment)
		courseCode := assignment.CourseCode
		assignmentID := assignment.ID
		_, err := broadcast(ctx, tx, title, content, &courseCode, &assignmentID)
		return err
	})
	if err != nil {
		s.logger.Error("create assignment failed", zap.String("course_code", req.CourseCode), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	s.logger.Info("assignment created",
		zap.Int64("assignment_id", assignment.ID),
		zap.String("course_code", assignment.CourseCode),
	)

	resp := toAssignmentResponse(assignment)
	return &resp, nil
}

// ────────────────────── Query ──────────────────────

func (s *assignmentService) Get(ctx context.Context, id int64) (*dto.AssignmentResponse, error) {
	a, err := getAssignment(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := toAssignmentResponse(a)
	return &resp, nil
}

func (s *assignmentService) ListByCourse(ctx context.Context, courseCode string) ([]dto.AssignmentResponse, error) {
	list, err := s.repo.Assignment.ListByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("course_code", courseCode), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	result := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		result = append(result, toAssignmentResponse(&list[i]))
	}
	return result, nil
}

func (s *assignmentService) ListForStudent(ctx context.Context, studentID string) ([]dto.StudentAssignmentResponse, error) {
	list, err := s.repo.Assignment.ListForStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list student assignments failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	subs, err := s.repo.Submission.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list student submissions failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	submitted := make(map[int64]bool, len(subs))
	for _, sub := range subs {
		submitted[sub.AssignmentID] = true
	}

	result := make([]dto.StudentAssignmentResponse, 0, len(list))
	for i := range list {
		status := model.StatusNotSubmitted
		if submitted[list[i].ID] {
			status = model.StatusSubmitted
		}
		result = append(result, dto.StudentAssignmentResponse{
			AssignmentResponse: toAssignmentResponse(&list[i]),
			Status:             string(status),
		})
	}
	return result, nil
}

// ── helpers ──

func getAssignment(ctx context.Context, repo *repository.Repository, id int64) (*model.Assignment, error) {
	a, err := repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound.WithField("assignment_id", id)
		}
		return nil, apperr.Classify(err)
	}
	return a, nil
}

func toAssignmentResponse(a *model.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		Instructions:    a.Instructions,
		DueDate:         a.DueDate.Format(dateLayout),
		CourseCode:      a.CourseCode,
		MaxPoints:       a.MaxPoints,
		GradingCriteria: a.GradingCriteria,
	}
}
