package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-lms/backend/config"
	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/repository"
	"campus-lms/backend/internal/service"
	"campus-lms/backend/internal/session"
	"campus-lms/backend/pkg/database"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/jwt"
	applogger "campus-lms/backend/pkg/logger"
	"campus-lms/backend/pkg/redis"
)

var errNotLoggedIn = apperr.New(apperr.KindPermission, "not logged in, run `lms login` first")

// runtime holds the wired dependencies for one CLI invocation
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	rdb     *redis.Client
	svc     *service.Service
	manager *session.Manager
}

func (rt *runtime) init(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	rt.cfg = cfg

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	rt.logger = logger

	db, err := database.NewDB(ctx, &cfg.Database, logger)
	if err != nil {
		return apperr.ErrStoreUnavailable.Wrap(err)
	}
	rt.db = db

	if cfg.Database.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			return err
		}
	}

	// Redis is optional; without it logout cannot revoke tokens server-side
	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(ctx, &cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without blacklist and locks", zap.Error(err))
		} else {
			rt.rdb = rdb
		}
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	rt.svc = service.NewService(cfg, repo, jwtMgr, rt.rdb, logger)
	rt.manager = session.NewManager(rt.svc, cfg.Poller, session.AlerterFunc(printAlert), logger)

	return nil
}

func (rt *runtime) close() {
	if rt.rdb != nil {
		_ = rt.rdb.Close()
	}
	if rt.db != nil {
		_ = database.Close(rt.db)
	}
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
}

// ── session file ──

func (rt *runtime) saveToken(token string) error {
	return os.WriteFile(rt.cfg.Auth.SessionFile, []byte(token), 0o600)
}

func (rt *runtime) clearToken() error {
	err := os.Remove(rt.cfg.Auth.SessionFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// current resumes the session saved by `lms login`
func (rt *runtime) current(ctx context.Context) (*session.Session, error) {
	data, err := os.ReadFile(rt.cfg.Auth.SessionFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotLoggedIn
		}
		return nil, err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return nil, errNotLoggedIn
	}
	return rt.manager.Resume(ctx, token)
}

func printAlert(alert dto.Alert) {
	fmt.Printf("\n[notification] %s\n", alert.Message)
}

func exitCode(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return 2
	case apperr.KindNotFound:
		return 3
	case apperr.KindConflict:
		return 4
	case apperr.KindPermission:
		return 5
	case apperr.KindConnectivity:
		return 6
	default:
		return 1
	}
}
