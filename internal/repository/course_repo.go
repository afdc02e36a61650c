package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-lms/backend/internal/model"
)

// CourseRepository course data access
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	CreateIfAbsent(ctx context.Context, course *model.Course) (bool, error)
	GetByCode(ctx context.Context, code string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByTeacher(ctx context.Context, teacher string) ([]model.Course, error)
	ListAvailableForStudent(ctx context.Context, studentID string) ([]model.Course, error)
	CountStudentsByTeacher(ctx context.Context, teacher string) (int64, error)
	UpdateProgress(ctx context.Context, code string, progress int) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates a CourseRepository
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

// CreateIfAbsent inserts unless the code exists; reports whether a row was written
func (r *courseRepo) CreateIfAbsent(ctx context.Context, course *model.Course) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(course)
	return res.RowsAffected > 0, res.Error
}

func (r *courseRepo) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_code = ?", code).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Order("course_code").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByTeacher(ctx context.Context, teacher string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("teacher = ?", teacher).
		Order("course_code").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListAvailableForStudent(ctx context.Context, studentID string) ([]model.Course, error) {
	enrolled := r.db.Model(&model.Enrollment{}).
		Select("course_code").
		Where("student_id = ?", studentID)

	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("course_code NOT IN (?)", enrolled).
		Order("course_code").
		Find(&courses).Error
	return courses, err
}

// CountStudentsByTeacher distinct students enrolled in any of the teacher's courses
func (r *courseRepo) CountStudentsByTeacher(ctx context.Context, teacher string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Joins("JOIN courses c ON c.course_code = enrollments.course_code").
		Where("c.teacher = ?", teacher).
		Distinct("enrollments.student_id").
		Count(&n).Error
	return n, err
}

func (r *courseRepo) UpdateProgress(ctx context.Context, code string, progress int) error {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("course_code = ?", code).
		Update("progress", progress).Error
}
