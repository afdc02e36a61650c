package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-lms/backend/internal/model"
)

// NotificationRepository per-student announcement watermark
type NotificationRepository interface {
	// GetLastChecked returns ok=false when the student has never been checked
	GetLastChecked(ctx context.Context, studentID string) (time.Time, bool, error)
	// UpsertLastChecked never moves the watermark backwards
	UpsertLastChecked(ctx context.Context, studentID string, at time.Time) error
	// Now reads the store clock, which stamps created_at and publish_date
	Now(ctx context.Context) (time.Time, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo creates a NotificationRepository
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) GetLastChecked(ctx context.Context, studentID string) (time.Time, bool, error) {
	var row model.StudentNotification
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return row.LastChecked, true, nil
}

func (r *notificationRepo) UpsertLastChecked(ctx context.Context, studentID string, at time.Time) error {
	row := model.StudentNotification{StudentID: studentID, LastChecked: at}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}},
			DoUpdates: clause.Set{{
				Column: clause.Column{Name: "last_checked"},
				Value:  gorm.Expr("GREATEST(student_notifications.last_checked, EXCLUDED.last_checked)"),
			}},
		}).
		Create(&row).Error
}

func (r *notificationRepo) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	err := r.db.WithContext(ctx).Raw("SELECT CURRENT_TIMESTAMP").Scan(&now).Error
	return now, err
}
