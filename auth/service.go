package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("login is not configured")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrExpiredToken       = errors.New("session expired")
	ErrRevokedToken       = errors.New("session revoked")
	ErrMissingSecret      = errors.New("session secret is required")
)

const DefaultDashboardTTL = 12 * time.Hour

type Config struct {
	Secret                    string
	DashboardUsername         string
	DashboardPassword         string
	FreelancerManagerPassword string
	DashboardTTL              time.Duration
	// HashCost defaults to bcrypt.DefaultCost. Tests lower it.
	HashCost int
	Now      func() time.Time
}

type claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Service logs users in and verifies their tokens. Passwords are kept only as
// bcrypt hashes.
type Service struct {
	secret            []byte
	dashboardUsername string
	dashboardHash     []byte
	managerHash       []byte
	dashboardTTL      time.Duration
	now               func() time.Time
	revoker           Revoker
}

// NewService hashes the configured passwords. An empty password disables
// that login.
func NewService(cfg Config, revoker Revoker) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	if cfg.DashboardTTL <= 0 {
		cfg.DashboardTTL = DefaultDashboardTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if revoker == nil {
		revoker = NewMemoryRevoker(cfg.Now)
	}

	s := &Service{
		secret:            []byte(cfg.Secret),
		dashboardUsername: cfg.DashboardUsername,
		dashboardTTL:      cfg.DashboardTTL,
		now:               cfg.Now,
		revoker:           revoker,
	}

	var err error
	if cfg.DashboardPassword != "" {
		if s.dashboardHash, err = bcrypt.GenerateFromPassword([]byte(cfg.DashboardPassword), cfg.HashCost); err != nil {
			return nil, fmt.Errorf("hash dashboard password: %w", err)
		}
	}
	if cfg.FreelancerManagerPassword != "" {
		if s.managerHash, err = bcrypt.GenerateFromPassword([]byte(cfg.FreelancerManagerPassword), cfg.HashCost); err != nil {
			return nil, fmt.Errorf("hash freelancer manager password: %w", err)
		}
	}
	return s, nil
}

// LoginDashboard checks username and password and issues a dashboard session.
func (s *Service) LoginDashboard(username, password string) (Token, error) {
	if s.dashboardHash == nil || s.dashboardUsername == "" {
		return Token{}, ErrLoginDisabled
	}
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.dashboardUsername)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(s.dashboardHash, []byte(password)) == nil
	if !usernameOK || !passwordOK {
		return Token{}, ErrInvalidCredentials
	}
	return s.issue(RoleDashboard, username, s.dashboardTTL)
}

// LoginFreelancerManager checks the shared password and issues a 24 hour
// freelancer manager session.
func (s *Service) LoginFreelancerManager(password string) (Token, error) {
	if s.managerHash == nil {
		return Token{}, ErrLoginDisabled
	}
	if bcrypt.CompareHashAndPassword(s.managerHash, []byte(password)) != nil {
		return Token{}, ErrInvalidCredentials
	}
	return s.issue(RoleFreelancerManager, "freelancer-manager", FreelancerManagerTTL)
}

func (s *Service) issue(role Role, subject string, ttl time.Duration) (Token, error) {
	now := s.now().UTC().Truncate(time.Second)
	session := Session{
		ID:        uuid.NewString(),
		Role:      role,
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign session: %w", err)
	}

	log.Info().Str("role", string(role)).Str("sessionID", session.ID).Msg("Session issued")
	return Token{Value: signed, Session: session}, nil
}

// Verify parses and checks a token, including revocation.
func (s *Service) Verify(ctx context.Context, value string) (*Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(value, &c, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !c.Role.Valid() || c.ID == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	session := &Session{
		ID:        c.ID,
		Role:      c.Role,
		Subject:   c.Subject,
		ExpiresAt: c.ExpiresAt.Time.UTC(),
	}
	if c.IssuedAt != nil {
		session.IssuedAt = c.IssuedAt.Time.UTC()
	}
	return session, nil
}

// Logout revokes the session until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, session *Session) error {
	if err := s.revoker.Revoke(ctx, session.ID, session.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	log.Info().Str("role", string(session.Role)).Str("sessionID", session.ID).Msg("Session revoked")
	return nil
}
