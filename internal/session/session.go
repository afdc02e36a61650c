package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"campus-lms/backend/config"
	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/service"
	apperr "campus-lms/backend/pkg/errors"
)

// ErrForbidden the session's role may not perform the action
var ErrForbidden = apperr.New(apperr.KindPermission, "not allowed for this role")

// Manager opens and closes sessions
type Manager struct {
	svc     *service.Service
	cfg     config.PollerConfig
	alerter Alerter
	logger  *zap.Logger
}

// NewManager creates a Manager
func NewManager(svc *service.Service, cfg config.PollerConfig, alerter Alerter, logger *zap.Logger) *Manager {
	return &Manager{svc: svc, cfg: cfg, alerter: alerter, logger: logger}
}

// Session is the logged-in principal passed to every workflow call.
// Student sessions own the notification pollers until Logout.
type Session struct {
	User  dto.UserResponse
	Token string

	svc    *service.Service
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// Login checks credentials and starts pollers for students
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := m.svc.Auth.Login(ctx, &dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	s := &Session{User: resp.User, Token: resp.Token, svc: m.svc}
	m.start(s)
	return s, nil
}

// Resume rebuilds a session from a stored token without starting pollers
func (m *Manager) Resume(ctx context.Context, token string) (*Session, error) {
	claims, err := m.svc.Auth.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return &Session{
		User: dto.UserResponse{
			ID:       claims.UserID,
			FullName: claims.FullName,
			Username: claims.Username,
			Role:     claims.Role,
		},
		Token: token,
		svc:   m.svc,
	}, nil
}

// Watch starts the pollers on a resumed session
func (m *Manager) Watch(s *Session) {
	m.start(s)
}

func (m *Manager) start(s *Session) {
	if s.User.Role != model.RoleStudent || s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	studentID := s.User.ID
	pollers := []*poller{
		{
			name:     "grades",
			interval: m.cfg.GradeInterval,
			check: func(ctx context.Context) (*dto.Alert, error) {
				return m.svc.Notification.CheckGrades(ctx, studentID)
			},
			alerter: m.alerter,
			logger:  m.logger,
		},
		{
			name:     "announcements",
			interval: m.cfg.AnnouncementInterval,
			check: func(ctx context.Context) (*dto.Alert, error) {
				return m.svc.Notification.CheckAnnouncements(ctx, studentID)
			},
			alerter: m.alerter,
			logger:  m.logger,
		},
	}

	for _, p := range pollers {
		s.wg.Add(1)
		go func(p *poller) {
			defer s.wg.Done()
			p.run(ctx)
		}(p)
	}
}

// Stop cancels the pollers and waits for them; the token stays valid
func (m *Manager) Stop(s *Session) {
	if s.cancel != nil {
		s.cancel()
		s.wg.Wait()
	}
}

// Logout stops the pollers, waits for them, and revokes the token. Safe to call twice.
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	var err error
	s.once.Do(func() {
		m.Stop(s)
		err = m.svc.Auth.Logout(ctx, s.Token)
		m.logger.Info("user logged out", zap.String("user_id", s.User.ID))
	})
	return err
}

// IsStudent reports the session role
func (s *Session) IsStudent() bool { return s.User.Role == model.RoleStudent }

// IsLecturer reports the session role
func (s *Session) IsLecturer() bool { return s.User.Role == model.RoleLecturer }

func (s *Session) requireStudent() error {
	if !s.IsStudent() {
		return ErrForbidden.WithField("role", s.User.Role)
	}
	return nil
}

func (s *Session) requireLecturer() error {
	if !s.IsLecturer() {
		return ErrForbidden.WithField("role", s.User.Role)
	}
	return nil
}
