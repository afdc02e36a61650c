package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/storage"
	"campus-lms/backend/pkg/validate"
)

var (
	ErrAlreadySubmitted   = apperr.New(apperr.KindConflict, "assignment already submitted")
	ErrSubmissionNotFound = apperr.New(apperr.KindNotFound, "submission not found")
	ErrNotEnrolled        = apperr.New(apperr.KindPermission, "not enrolled in this course")
)

// SubmissionService submission ledger: at most one row per (assignment, student)
type SubmissionService interface {
	Submit(ctx context.Context, studentID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
	Unsubmit(ctx context.Context, assignmentID int64, studentID string) error
	Get(ctx context.Context, id int64) (*dto.SubmissionResponse, error)
	StatusFor(ctx context.Context, studentID string, assignmentID int64) (model.SubmissionStatus, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]dto.SubmissionResponse, error)
	ListPublishedGrades(ctx context.Context, studentID string) ([]dto.GradeResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	files  FileStore
	logger *zap.Logger
}

// NewSubmissionService creates a SubmissionService
func NewSubmissionService(repo *repository.Repository, files FileStore, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, files: files, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, studentID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	assignment, err := getAssignment(ctx, s.repo, req.AssignmentID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.repo.Enrollment.Exists(ctx, studentID, assignment.CourseCode)
	if err != nil {
		s.logger.Error("check enrollment failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled.WithField("course_code", assignment.CourseCode)
	}

	if _, err := s.repo.Submission.GetByAssignmentAndStudent(ctx, req.AssignmentID, studentID); err == nil {
		return nil, ErrAlreadySubmitted.WithField("assignment_id", req.AssignmentID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check submission failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	path, err := s.files.Save(req.SourcePath, storage.SubmissionName(req.AssignmentID, studentID, req.SourcePath))
	if err != nil {
		s.logger.Error("store submission file failed", zap.Error(err))
		return nil, apperr.ErrInternal.Wrap(err)
	}

	submission := &model.Submission{
		AssignmentID:   req.AssignmentID,
		StudentID:      studentID,
		FilePath:       path,
		SubmissionDate: time.Now(),
	}
	if err := s.repo.Submission.Create(ctx, submission); err != nil {
		// the stored name is unique to this call, so a losing racer only removes its own copy
		if rmErr := s.files.Remove(path); rmErr != nil {
			s.logger.Warn("remove orphaned submission file failed", zap.String("path", path), zap.Error(rmErr))
		}
		if apperr.IsUniqueViolation(err) {
			return nil, ErrAlreadySubmitted.WithField("assignment_id", req.AssignmentID)
		}
		s.logger.Error("create submission failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	s.logger.Info("assignment submitted",
		zap.Int64("assignment_id", req.AssignmentID),
		zap.String("student_id", studentID),
	)

	resp := toSubmissionResponse(submission)
	return &resp, nil
}

// ────────────────────── Unsubmit ──────────────────────

// Unsubmit deletes the row and its file; no row is not an error
func (s *submissionService) Unsubmit(ctx context.Context, assignmentID int64, studentID string) error {
	existing, err := s.repo.Submission.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("load submission failed", zap.Error(err))
		return apperr.Classify(err)
	}

	if _, err := s.repo.Submission.DeleteByAssignmentAndStudent(ctx, assignmentID, studentID); err != nil {
		s.logger.Error("delete submission failed", zap.Error(err))
		return apperr.Classify(err)
	}
	if err := s.files.Remove(existing.FilePath); err != nil {
		s.logger.Warn("remove submission file failed", zap.String("path", existing.FilePath), zap.Error(err))
	}
	return nil
}

func (s *submissionService) Get(ctx context.Context, id int64) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound.WithField("submission_id", id)
		}
		s.logger.Error("load submission failed", zap.Int64("submission_id", id), zap.Error(err))
		return nil, apperr.Classify(err)
	}
	resp := toSubmissionResponse(sub)
	return &resp, nil
}

// ────────────────────── Status ──────────────────────

func (s *submissionService) StatusFor(ctx context.Context, studentID string, assignmentID int64) (model.SubmissionStatus, error) {
	_, err := s.repo.Submission.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err == nil {
		return model.StatusSubmitted, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StatusNotSubmitted, nil
	}
	s.logger.Error("load submission failed", zap.Error(err))
	return "", apperr.Classify(err)
}

// ────────────────────── Views ──────────────────────

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID int64) ([]dto.SubmissionResponse, error) {
	if _, err := getAssignment(ctx, s.repo, assignmentID); err != nil {
		return nil, err
	}
	list, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("list submissions failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	result := make([]dto.SubmissionResponse, 0, len(list))
	for i := range list {
		result = append(result, toSubmissionResponse(&list[i]))
	}
	return result, nil
}

func (s *submissionService) ListPublishedGrades(ctx context.Context, studentID string) ([]dto.GradeResponse, error) {
	list, err := s.repo.Submission.ListPublishedByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list published grades failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	result := make([]dto.GradeResponse, 0, len(list))
	for _, sub := range list {
		if sub.Grade == nil {
			continue
		}
		g := dto.GradeResponse{
			SubmissionID: sub.ID,
			AssignmentID: sub.AssignmentID,
			Grade:        *sub.Grade,
		}
		if sub.Assignment != nil {
			g.AssignmentTitle = sub.Assignment.Title
			g.CourseCode = sub.Assignment.CourseCode
			g.MaxPoints = sub.Assignment.MaxPoints
		}
		if sub.Feedback != nil {
			g.Feedback = *sub.Feedback
		}
		if sub.PublishDate != nil {
			g.PublishDate = sub.PublishDate.Format(timeLayout)
		}
		result = append(result, g)
	}
	return result, nil
}

func toSubmissionResponse(sub *model.Submission) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		ID:             sub.ID,
		AssignmentID:   sub.AssignmentID,
		StudentID:      sub.StudentID,
		FilePath:       sub.FilePath,
		SubmissionDate: sub.SubmissionDate.Format(timeLayout),
		Grade:          sub.Grade,
		Feedback:       sub.Feedback,
		Published:      sub.Published,
	}
	if sub.Student != nil {
		resp.StudentName = sub.Student.FullName
	}
	if sub.PublishDate != nil {
		d := sub.PublishDate.Format(timeLayout)
		resp.PublishDate = &d
	}
	return resp
}
