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
	"campus-lms/backend/pkg/redis"
	"campus-lms/backend/pkg/validate"
)

var (
	ErrScoreOutOfRange      = apperr.New(apperr.KindValidation, "score must be between 0 and the assignment's max points")
	ErrNotGraded            = apperr.New(apperr.KindValidation, "submission has not been graded")
	ErrNoGradableSubmission = apperr.New(apperr.KindNotFound, "no gradable submissions found for this course")
	ErrPublishInProgress    = apperr.New(apperr.KindConflict, "another publish is running for this course")
)

const publishLockTTL = 30 * time.Second

// GradingService grading workflow and publication gate.
// Ungraded -> Graded(unpublished) -> Published
type GradingService interface {
	Grade(ctx context.Context, req *dto.GradeRequest) (*dto.SubmissionResponse, error)
	// Publish is a no-op for a row that is already published
	Publish(ctx context.Context, submissionID int64) error
	PublishAllForCourse(ctx context.Context, courseCode string) (int64, error)
}

type gradingService struct {
	repo   *repository.Repository
	locker Locker
	logger *zap.Logger
}

// NewGradingService creates a GradingService. locker may be nil.
func NewGradingService(repo *repository.Repository, locker Locker, logger *zap.Logger) GradingService {
	return &gradingService{repo: repo, locker: locker, logger: logger}
}

// ────────────────────── Grade ──────────────────────

// Grade overwrites grade and feedback; published state is untouched
func (s *gradingService) Grade(ctx context.Context, req *dto.GradeRequest) (*dto.SubmissionResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	sub, err := s.getSubmission(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}

	var maxPoints int
	if sub.Assignment != nil {
		maxPoints = sub.Assignment.MaxPoints
	} else {
		a, err := getAssignment(ctx, s.repo, sub.AssignmentID)
		if err != nil {
			return nil, err
		}
		maxPoints = a.MaxPoints
	}
	if req.Score < 0 || req.Score > maxPoints {
		return nil, ErrScoreOutOfRange.
			WithField("score", req.Score).
			WithField("max_points", maxPoints)
	}

	var feedback *string
	if f := strings.TrimSpace(req.Feedback); f != "" {
		feedback = &f
	}

	if err := s.repo.Submission.UpdateGrade(ctx, sub.ID, req.Score, feedback); err != nil {
		s.logger.Error("update grade failed", zap.Int64("submission_id", sub.ID), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	score := req.Score
	sub.Grade = &score
	sub.Feedback = feedback

	resp := toSubmissionResponse(sub)
	return &resp, nil
}

// ────────────────────── Publish ──────────────────────

func (s *gradingService) Publish(ctx context.Context, submissionID int64) error {
	sub, err := s.getSubmission(ctx, submissionID)
	if err != nil {
		return err
	}
	if !sub.IsGraded() {
		return ErrNotGraded.WithField("submission_id", submissionID)
	}
	if sub.Published {
		return nil
	}

	if _, err := s.repo.Submission.Publish(ctx, []int64{submissionID}); err != nil {
		s.logger.Error("publish submission failed", zap.Int64("submission_id", submissionID), zap.Error(err))
		return apperr.Classify(err)
	}
	return nil
}

// PublishAllForCourse publishes every graded, unpublished submission of the course in one statement
func (s *gradingService) PublishAllForCourse(ctx context.Context, courseCode string) (int64, error) {
	if _, err := getCourse(ctx, s.repo, courseCode); err != nil {
		return 0, err
	}

	if s.locker != nil {
		release, err := s.locker.Lock(ctx, "publish:"+courseCode, publishLockTTL)
		switch {
		case errors.Is(err, redis.ErrLockHeld):
			return 0, ErrPublishInProgress.WithField("course_code", courseCode)
		case err != nil:
			s.logger.Warn("publish lock unavailable, continuing without it", zap.Error(err))
		default:
			defer release()
		}
	}

	ids, err := s.repo.Submission.ListPublishableIDsByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("list publishable submissions failed", zap.String("course_code", courseCode), zap.Error(err))
		return 0, apperr.Classify(err)
	}
	if len(ids) == 0 {
		return 0, ErrNoGradableSubmission.WithField("course_code", courseCode)
	}

	n, err := s.repo.Submission.Publish(ctx, ids)
	if err != nil {
		s.logger.Error("bulk publish failed", zap.String("course_code", courseCode), zap.Error(err))
		return 0, apperr.Classify(err)
	}

	s.logger.Info("grades published",
		zap.String("course_code", courseCode),
		zap.Int64("count", n),
	)
	return n, nil
}

// ── helpers ──

func (s *gradingService) getSubmission(ctx context.Context, id int64) (*model.Submission, error) {
	sub, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound.WithField("submission_id", id)
		}
		s.logger.Error("load submission failed", zap.Int64("submission_id", id), zap.Error(err))
		return nil, apperr.Classify(err)
	}
	return sub, nil
}
