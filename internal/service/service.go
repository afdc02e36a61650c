package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campus-lms/backend/config"
	"campus-lms/backend/internal/repository"
	"campus-lms/backend/pkg/jwt"
	"campus-lms/backend/pkg/redis"
	"campus-lms/backend/pkg/storage"
)

// TokenBlacklist revoked session tokens
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Locker short-lived named locks
type Locker interface {
	Lock(ctx context.Context, name string, ttl time.Duration) (func(), error)
}

// FileStore the files side of submissions and materials
type FileStore interface {
	Save(src, name string) (string, error)
	Fetch(path, dst string) error
	Remove(path string) error
}

// Service aggregates every service
type Service struct {
	Auth         AuthService
	Course       CourseService
	Enrollment   EnrollmentService
	Announcement AnnouncementService
	Assignment   AssignmentService
	Material     MaterialService
	Submission   SubmissionService
	Grading      GradingService
	Notification NotificationService
	Export       ExportService
	Calendar     CalendarService
	Seed         SeedService
}

// NewService wires the services. rdb may be nil when Redis is disabled.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	var (
		blacklist TokenBlacklist
		locker    Locker
	)
	if rdb != nil {
		blacklist = rdb
		locker = rdb
	}

	submissions := storage.New(cfg.Storage.SubmissionsDir)
	materials := storage.New(cfg.Storage.MaterialsDir)

	announcements := NewAnnouncementService(repo, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Course:       NewCourseService(repo, logger),
		Enrollment:   NewEnrollmentService(repo, logger),
		Announcement: announcements,
		Assignment:   NewAssignmentService(repo, logger),
		Material:     NewMaterialService(repo, materials, logger),
		Submission:   NewSubmissionService(repo, submissions, logger),
		Grading:      NewGradingService(repo, locker, logger),
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(repo, logger),
		Calendar:     NewCalendarService(repo, logger),
		Seed:         NewSeedService(repo, logger),
	}
}

const dateLayout = "2006-01-02"
const timeLayout = "2006-01-02 15:04"
