package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
)

// SeedService installs the default catalogue and lecturer accounts
type SeedService interface {
	Seed(ctx context.Context) error
}

type seedLecturer struct {
	FullName string
	Email    string
	Username string
	Password string
}

var defaultCourses = []model.Course{
	{CourseCode: "CS101", CourseName: "Introduction to Computer Science", Teacher: "Dr. Motletle"},
	{CourseCode: "MATH201", CourseName: "Advanced Mathematics", Teacher: "Prof. Kiddah"},
	{CourseCode: "ENG102", CourseName: "English Composition", Teacher: "Dr. Motletle"},
}

// initial passwords equal usernames; lecturers are expected to change them
var defaultLecturers = []seedLecturer{
	{FullName: "Dr. Motletle", Email: "motletle@university.edu", Username: "kmotletle", Password: "kmotletle"},
	{FullName: "Prof. Kiddah", Email: "kiddah@university.edu", Username: "rkiddah", Password: "rkiddah"},
	{FullName: "Ratsebe", Email: "ratsebe@university.edu", Username: "ratsebe", Password: "ratsebe"},
}

type seedService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSeedService creates a SeedService
func NewSeedService(repo *repository.Repository, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, logger: logger}
}

// Seed is idempotent: existing courses and usernames are left alone
func (s *seedService) Seed(ctx context.Context) error {
	for i := range defaultCourses {
		course := defaultCourses[i]
		created, err := s.repo.Course.CreateIfAbsent(ctx, &course)
		if err != nil {
			s.logger.Error("seed course failed", zap.String("course_code", course.CourseCode), zap.Error(err))
			return apperr.Classify(err)
		}
		if created {
			s.logger.Info("seeded course", zap.String("course_code", course.CourseCode))
		}
	}

	for _, l := range defaultLecturers {
		_, err := s.repo.User.GetByUsername(ctx, l.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Classify(err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(l.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &model.User{
			FullName:     l.FullName,
			Email:        l.Email,
			Username:     l.Username,
			PasswordHash: string(hash),
			Role:         model.RoleLecturer,
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			s.logger.Error("seed lecturer failed", zap.String("username", l.Username), zap.Error(err))
			return apperr.Classify(err)
		}
		s.logger.Info("seeded lecturer", zap.String("username", l.Username))
	}

	return nil
}
