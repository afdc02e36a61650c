package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
)

// AssignmentRepository assignment data access
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id int64) (*model.Assignment, error)
	ListByCourse(ctx context.Context, courseCode string) ([]model.Assignment, error)
	ListForStudent(ctx context.Context, studentID string) ([]model.Assignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id int64) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByCourse(ctx context.Context, courseCode string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Order("due_date, id").
		Find(&assignments).Error
	return assignments, err
}

// ListForStudent assignments of every course the student is enrolled in
func (r *assignmentRepo) ListForStudent(ctx context.Context, studentID string) ([]model.Assignment, error) {
	enrolled := r.db.Model(&model.Enrollment{}).
		Select("course_code").
		Where("student_id = ?", studentID)

	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("course_code IN (?)", enrolled).
		Order("due_date, id").
		Find(&assignments).Error
	return assignments, err
}
