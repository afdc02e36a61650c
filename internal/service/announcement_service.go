package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/validate"
)

// AnnouncementService announcement broadcaster
type AnnouncementService interface {
	Broadcast(ctx context.Context, req *dto.BroadcastRequest) (*dto.AnnouncementResponse, error)
	ListForStudent(ctx context.Context, studentID string) ([]dto.AnnouncementResponse, error)
	ListForCourse(ctx context.Context, courseCode string) ([]dto.AnnouncementResponse, error)
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService creates an AnnouncementService
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

func (s *announcementService) Broadcast(ctx context.Context, req *dto.BroadcastRequest) (*dto.AnnouncementResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if req.CourseCode != nil {
		if _, err := getCourse(ctx, s.repo, *req.CourseCode); err != nil {
			return nil, err
		}
	}

	a, err := broadcast(ctx, s.repo, req.Title, req.Content, req.CourseCode, req.AssignmentID)
	if err != nil {
		s.logger.Error("create announcement failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	resp := toAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) ListForStudent(ctx context.Context, studentID string) ([]dto.AnnouncementResponse, error) {
	list, err := s.repo.Announcement.ListForStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list student announcements failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	return toAnnouncementResponses(list), nil
}

func (s *announcementService) ListForCourse(ctx context.Context, courseCode string) ([]dto.AnnouncementResponse, error) {
	list, err := s.repo.Announcement.ListByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("list course announcements failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	return toAnnouncementResponses(list), nil
}

// ── broadcaster shared with assignment/material creation ──

// broadcast inserts an announcement dated today through repo, which may be transaction-bound
func broadcast(ctx context.Context, repo *repository.Repository, title, content string, courseCode *string, assignmentID *int64) (*model.Announcement, error) {
	a := &model.Announcement{
		Title:        title,
		Content:      content,
		Date:         model.DateOnly(time.Now()),
		CourseCode:   courseCode,
		AssignmentID: assignmentID,
	}
	if err := repo.Announcement.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func newAssignmentAnnouncement(a *model.Assignment) (string, string) {
	return "New Assignment: " + a.Title,
		fmt.Sprintf("A new assignment '%s' has been posted for %s. Due date: %s",
			a.Title, a.CourseCode, a.DueDate.Format(dateLayout))
}

func newMaterialAnnouncement(m *model.CourseMaterial) (string, string) {
	return "New Material: " + m.Title,
		fmt.Sprintf("A new material '%s' has been uploaded for %s", m.Title, m.CourseCode)
}

func toAnnouncementResponse(a *model.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:           a.ID,
		Title:        a.Title,
		Content:      a.Content,
		Date:         a.Date.Format(dateLayout),
		CourseCode:   a.CourseCode,
		AssignmentID: a.AssignmentID,
	}
}

func toAnnouncementResponses(list []model.Announcement) []dto.AnnouncementResponse {
	result := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		result = append(result, toAnnouncementResponse(&list[i]))
	}
	return result
}
