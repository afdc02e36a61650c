package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
)

// EnrollmentRepository enrollment ledger data access
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Exists(ctx context.Context, studentID, courseCode string) (bool, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	ListStudentIDsByCourse(ctx context.Context, courseCode string) ([]string, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates an EnrollmentRepository
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepo) Exists(ctx context.Context, studentID, courseCode string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("student_id = ? AND course_code = ?", studentID, courseCode).
		Count(&n).Error
	return n > 0, err
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("course_code").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) ListStudentIDsByCourse(ctx context.Context, courseCode string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("course_code = ?", courseCode).
		Order("student_id").
		Pluck("student_id", &ids).Error
	return ids, err
}
