package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	idgen "github.com/fridayfut/fridayfut/internal/platform/id"
)

// Role is what an access code grants.
type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

// Principal is an authenticated caller.
type Principal struct {
	Token string
	Role  Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type session struct {
	role      Role
	createdAt time.Time
}

// SessionService trades the group's shared access codes for opaque bearer
// tokens. Tokens live until logout or restart.
type SessionService struct {
	playerCode string
	adminCode  string
	idGen      idgen.Generator
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]session
}

func NewSessionService(playerCode, adminCode string, idGen idgen.Generator, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionService{
		playerCode: strings.TrimSpace(playerCode),
		adminCode:  strings.TrimSpace(adminCode),
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]session),
	}
}

func (s *SessionService) Login(ctx context.Context, accessCode string) (Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Login")
	defer span.End()

	accessCode = strings.TrimSpace(accessCode)
	if accessCode == "" {
		return Principal{}, fmt.Errorf("%w: access code is required", ErrInvalidInput)
	}

	var role Role
	switch accessCode {
	case s.adminCode:
		role = RoleAdmin
	case s.playerCode:
		role = RolePlayer
	default:
		return Principal{}, fmt.Errorf("%w: unknown access code", ErrUnauthorized)
	}

	token, err := s.idGen.NewID()
	if err != nil {
		return Principal{}, fmt.Errorf("generate session token: %w", err)
	}

	s.mu.Lock()
	s.sessions[token] = session{role: role, createdAt: s.now()}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session opened", "role", role)

	return Principal{Token: token, Role: role}, nil
}

func (s *SessionService) VerifyAccessToken(_ context.Context, token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, fmt.Errorf("%w: missing session token", ErrUnauthorized)
	}

	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Principal{}, fmt.Errorf("%w: unknown session token", ErrUnauthorized)
	}

	return Principal{Token: token, Role: sess.role}, nil
}

func (s *SessionService) Logout(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Logout")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: session token is required", ErrInvalidInput)
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session closed")

	return nil
}
