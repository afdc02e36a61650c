package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/storage"
	"campus-lms/backend/pkg/validate"
)

var (
	ErrMaterialNotFound = apperr.New(apperr.KindNotFound, "material not found")
	ErrDownloadExists   = apperr.New(apperr.KindConflict, "a file with that name already exists in the target directory")
)

// MaterialService course material uploads
type MaterialService interface {
	Upload(ctx context.Context, req *dto.UploadMaterialRequest) (*dto.MaterialResponse, error)
	Get(ctx context.Context, id int64) (*dto.MaterialResponse, error)
	ListByCourse(ctx context.Context, courseCode string) ([]dto.MaterialResponse, error)
	// Download copies the stored file into destDir and returns the written path
	Download(ctx context.Context, id int64, destDir string) (string, error)
	Delete(ctx context.Context, id int64) error
}

type materialService struct {
	repo   *repository.Repository
	files  FileStore
	logger *zap.Logger
}

// NewMaterialService creates a MaterialService
func NewMaterialService(repo *repository.Repository, files FileStore, logger *zap.Logger) MaterialService {
	return &materialService{repo: repo, files: files, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *materialService) Upload(ctx context.Context, req *dto.UploadMaterialRequest) (*dto.MaterialResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := getCourse(ctx, s.repo, req.CourseCode); err != nil {
		return nil, err
	}

	path, err := s.files.Save(req.SourcePath, storage.MaterialName(req.CourseCode, req.SourcePath))
	if err != nil {
		s.logger.Error("store material file failed", zap.Error(err))
		return nil, apperr.ErrInternal.Wrap(err)
	}

	material := &model.CourseMaterial{
		Title:      req.Title,
		FilePath:   path,
		CourseCode: req.CourseCode,
	}
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Material.Create(ctx, material); err != nil {
			return err
		}
		title, content := newMaterialAnnouncement(material)
		courseCode := material.CourseCode
		_, err := broadcast(ctx, tx, title, content, &courseCode, nil)
		return err
	})
	if err != nil {
		if rmErr := s.files.Remove(path); rmErr != nil {
			s.logger.Warn("remove orphaned material file failed", zap.String("path", path), zap.Error(rmErr))
		}
		s.logger.Error("create material failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	resp := toMaterialResponse(material)
	return &resp, nil
}

// ────────────────────── Get / List / Download / Delete ──────────────────────

func (s *materialService) Get(ctx context.Context, id int64) (*dto.MaterialResponse, error) {
	material, err := s.getMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMaterialResponse(material)
	return &resp, nil
}

func (s *materialService) ListByCourse(ctx context.Context, courseCode string) ([]dto.MaterialResponse, error) {
	list, err := s.repo.Material.ListByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("list materials failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}
	result := make([]dto.MaterialResponse, 0, len(list))
	for i := range list {
		result = append(result, toMaterialResponse(&list[i]))
	}
	return result, nil
}

func (s *materialService) Download(ctx context.Context, id int64, destDir string) (string, error) {
	material, err := s.getMaterial(ctx, id)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(destDir, filepath.Base(material.FilePath))
	if err := s.files.Fetch(material.FilePath, dst); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return "", ErrDownloadExists.WithField("path", dst)
		}
		s.logger.Error("fetch material file failed", zap.Int64("material_id", id), zap.Error(err))
		return "", apperr.ErrInternal.Wrap(err)
	}
	return dst, nil
}

func (s *materialService) Delete(ctx context.Context, id int64) error {
	material, err := s.getMaterial(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Material.Delete(ctx, id); err != nil {
		s.logger.Error("delete material failed", zap.Int64("material_id", id), zap.Error(err))
		return apperr.Classify(err)
	}
	if err := s.files.Remove(material.FilePath); err != nil {
		s.logger.Warn("remove material file failed", zap.String("path", material.FilePath), zap.Error(err))
	}
	return nil
}

func (s *materialService) getMaterial(ctx context.Context, id int64) (*model.CourseMaterial, error) {
	material, err := s.repo.Material.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound.WithField("material_id", id)
		}
		s.logger.Error("load material failed", zap.Int64("material_id", id), zap.Error(err))
		return nil, apperr.Classify(err)
	}
	return material, nil
}

func toMaterialResponse(m *model.CourseMaterial) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:         m.ID,
		Title:      m.Title,
		FilePath:   m.FilePath,
		CourseCode: m.CourseCode,
		UploadDate: m.UploadDate.Format(timeLayout),
	}
}
