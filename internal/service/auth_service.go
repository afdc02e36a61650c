package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campus-lms/backend/config"
	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/jwt"
	"campus-lms/backend/pkg/validate"
)

var (
	ErrCredentialsRequired = apperr.New(apperr.KindValidation, "username and password are required")
	ErrInvalidCredentials  = apperr.New(apperr.KindPermission, "invalid username or password")
	ErrUsernameTaken       = apperr.New(apperr.KindConflict, "username already exists")
	ErrEmailTaken          = apperr.New(apperr.KindConflict, "email already registered")
	ErrSessionExpired      = apperr.New(apperr.KindPermission, "session expired, please log in again")
	ErrSessionRevoked      = apperr.New(apperr.KindPermission, "session has been logged out")
)

// AuthService identity check and registration
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger

	compare func(hash, password []byte) error
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknown usernames still pay for one bcrypt comparison
func timingDummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("campus-lms-dummy-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// NewAuthService creates an AuthService. blacklist may be nil.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
		compare:   bcrypt.CompareHashAndPassword,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.compare(timingDummyHash(), []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load user failed", zap.String("username", username), zap.Error(err))
		return nil, apperr.Classify(err)
	}

	if err := s.compare([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateSessionToken(user.ID, user.Username, user.FullName, user.Role)
	if err != nil {
		s.logger.Error("sign session token failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", user.Role))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.cfg.Auth.SessionTTL.Seconds()),
		User:      toUserResponse(user),
	}, nil
}

// ────────────────────── Register ──────────────────────

// Register creates a student account. Lecturers only come from seeding.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken.WithField("username", req.Username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check username failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken.WithField("email", req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check email failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken.WithField("username", req.Username)
		}
		s.logger.Error("create user failed", zap.Error(err))
		return nil, apperr.Classify(err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Authenticate / Logout ──────────────────────

func (s *authService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrSessionRevoked.Wrap(err)
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Redis down: degrade to signature-only checks
			s.logger.Warn("blacklist lookup failed", zap.Error(err))
		} else if revoked {
			return nil, ErrSessionRevoked
		}
	}

	return claims, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		// expired or garbage tokens are already unusable
		return nil
	}
	if s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		s.logger.Warn("blacklist token failed", zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
