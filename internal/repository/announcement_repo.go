package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
)

// AnnouncementRepository announcement data access
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	ListForStudent(ctx context.Context, studentID string) ([]model.Announcement, error)
	ListByCourse(ctx context.Context, courseCode string) ([]model.Announcement, error)
	CountForStudentBetween(ctx context.Context, studentID string, after, upTo time.Time) (int64, error)
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo creates an AnnouncementRepository
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

// visibleTo global announcements plus those of the student's courses
func (r *announcementRepo) visibleTo(ctx context.Context, studentID string) *gorm.DB {
	enrolled := r.db.Model(&model.Enrollment{}).
		Select("course_code").
		Where("student_id = ?", studentID)

	return r.db.WithContext(ctx).
		Model(&model.Announcement{}).
		Where("course_code IS NULL OR course_code IN (?)", enrolled)
}

func (r *announcementRepo) ListForStudent(ctx context.Context, studentID string) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.visibleTo(ctx, studentID).
		Order("date DESC, created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

func (r *announcementRepo) ListByCourse(ctx context.Context, courseCode string) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.db.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Order("date DESC, created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

// CountForStudentBetween announcements visible to the student created in (after, upTo]
func (r *announcementRepo) CountForStudentBetween(ctx context.Context, studentID string, after, upTo time.Time) (int64, error) {
	var n int64
	err := r.visibleTo(ctx, studentID).
		Where("created_at > ? AND created_at <= ?", after, upTo).
		Count(&n).Error
	return n, err
}
