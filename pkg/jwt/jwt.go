package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"campus-lms/backend/config"
)

const issuer = "campus-lms"

var (
	ErrTokenExpired = errors.New("session token expired")
	ErrTokenInvalid = errors.New("session token invalid")
)

// Claims session token claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwtv5.RegisteredClaims
}

// Manager signs and verifies session tokens
type Manager struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewManager creates a Manager
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		sessionTTL: cfg.SessionTTL,
	}
}

// GenerateSessionToken issues a signed token for a logged-in user
func (m *Manager) GenerateSessionToken(userID, username, fullName, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		FullName: fullName,
		Role:     role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.sessionTTL)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies signature and expiry
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// RemainingTTL is how long the token stays valid; used as the blacklist TTL
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}
