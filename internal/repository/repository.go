package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Course       CourseRepository
	Enrollment   EnrollmentRepository
	Assignment   AssignmentRepository
	Material     MaterialRepository
	Announcement AnnouncementRepository
	Submission   SubmissionRepository
	Notification NotificationRepository
}

// NewRepository builds the aggregate over one pooled connection
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Course:       NewCourseRepo(db),
		Enrollment:   NewEnrollmentRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Material:     NewMaterialRepo(db),
		Announcement: NewAnnouncementRepo(db),
		Submission:   NewSubmissionRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

// Transaction runs fn against a repository bound to one transaction.
// An aggregate assembled by hand (tests) has no db and runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
