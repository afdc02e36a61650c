package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
)

// Alert kinds
const (
	AlertGrades        = "grades"
	AlertAnnouncements = "announcements"
)

// NotificationService one poller tick per check.
// A nil alert means nothing new.
type NotificationService interface {
	CheckGrades(ctx context.Context, studentID string) (*dto.Alert, error)
	CheckAnnouncements(ctx context.Context, studentID string) (*dto.Alert, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService creates a NotificationService
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// ────────────────────── grades ──────────────────────

// CheckGrades reports published grades the student has not been alerted about,
// then advances last_notified on exactly those rows
func (s *notificationService) CheckGrades(ctx context.Context, studentID string) (*dto.Alert, error) {
	ids, err := s.repo.Submission.ListPendingNotificationIDs(ctx, studentID)
	if err != nil {
		s.logger.Error("grade check failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, apperr.Classify(err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if _, err := s.repo.Submission.MarkNotified(ctx, studentID, ids); err != nil {
		s.logger.Error("advance notification watermark failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	n := int64(len(ids))
	return &dto.Alert{
		Kind:    AlertGrades,
		Count:   n,
		Message: fmt.Sprintf("You have %d new graded assignment%s", n, plural(n)),
	}, nil
}

// ────────────────────── announcements ──────────────────────

// CheckAnnouncements counts visible announcements created since the watermark and
// moves the watermark forward on every tick
func (s *notificationService) CheckAnnouncements(ctx context.Context, studentID string) (*dto.Alert, error) {
	now, err := s.repo.Notification.Now(ctx)
	if err != nil {
		s.logger.Error("read store clock failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	since, ok, err := s.repo.Notification.GetLastChecked(ctx, studentID)
	if err != nil {
		s.logger.Error("load announcement watermark failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, apperr.Classify(err)
	}
	if !ok {
		since = time.Unix(0, 0).UTC()
	}

	n, err := s.repo.Announcement.CountForStudentBetween(ctx, studentID, since, now)
	if err != nil {
		s.logger.Error("announcement check failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	if err := s.repo.Notification.UpsertLastChecked(ctx, studentID, now); err != nil {
		s.logger.Error("advance announcement watermark failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	if n == 0 {
		return nil, nil
	}
	return &dto.Alert{
		Kind:    AlertAnnouncements,
		Count:   n,
		Message: fmt.Sprintf("You have %d new announcement%s", n, plural(n)),
	}, nil
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
