package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
)

// MaterialRepository course material data access
type MaterialRepository interface {
	Create(ctx context.Context, material *model.CourseMaterial) error
	GetByID(ctx context.Context, id int64) (*model.CourseMaterial, error)
	ListByCourse(ctx context.Context, courseCode string) ([]model.CourseMaterial, error)
	Delete(ctx context.Context, id int64) error
}

type materialRepo struct {
	db *gorm.DB
}

// NewMaterialRepo creates a MaterialRepository
func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db: db}
}

func (r *materialRepo) Create(ctx context.Context, material *model.CourseMaterial) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepo) GetByID(ctx context.Context, id int64) (*model.CourseMaterial, error) {
	var material model.CourseMaterial
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) ListByCourse(ctx context.Context, courseCode string) ([]model.CourseMaterial, error) {
	var materials []model.CourseMaterial
	err := r.db.WithContext(ctx).
		Where("course_code = ?", courseCode).
		Order("upload_date DESC, id DESC").
		Find(&materials).Error
	return materials, err
}

func (r *materialRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CourseMaterial{}).Error
}
