package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hechonl_backend/internal/auth"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/repositories"
	"hechonl_backend/internal/services/dto"
	"hechonl_backend/pkg/apperrors"
)

// Session is the single process-wide login state.
type Session struct {
	ID              string       `json:"id,omitempty"`
	IsAuthenticated bool         `json:"is_authenticated"`
	CurrentUser     *models.User `json:"current_user,omitempty"`
	StartedAt       time.Time    `json:"started_at,omitempty"`
}

// Delay runs before each login and registration. It must return ctx.Err()
// when the context ends first.
type Delay func(ctx context.Context) error

// NoDelay is the production default.
func NoDelay(ctx context.Context) error {
	return ctx.Err()
}

// FixedDelay waits d, or less if ctx is cancelled.
func FixedDelay(d time.Duration) Delay {
	if d <= 0 {
		return NoDelay
	}
	return func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Register(ctx context.Context, email, password, fullName string) (*dto.AuthResponse, error)
	Logout()

	// Authenticate resolves a bearer token to the current session. Tokens
	// from an earlier session are rejected.
	Authenticate(token string) (Session, error)

	Session() Session
	IsAuthenticated() bool
	CurrentUser() *models.User
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	hasher   auth.PasswordHasher
	tokens   *auth.TokenManager
	delay    Delay
	now      func() time.Time

	mu      sync.Mutex
	session Session
}

func NewAuthService(
	userRepo repositories.UserRepository,
	hasher auth.PasswordHasher,
	tokens *auth.TokenManager,
	delay Delay,
) *AuthServiceImpl {
	if delay == nil {
		delay = NoDelay
	}
	return &AuthServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		delay:    delay,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login fails with the same invalid-credentials error for an unknown email
// and for a wrong password. Form rules are checked by the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FetchUser(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxInfo(ctx, "login rejected", "reason", "unknown_email")
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.CtxWithError(ctx, "failed to fetch user for login", err)
		return nil, apperrors.ErrServer.WithError(err)
	}

	if !s.hasher.Compare(user.Password, password) {
		logger.CtxInfo(ctx, "login rejected", "reason", "wrong_password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// Register creates the user and starts a session. An email that is taken
// fails with ErrUserAlreadyExists whatever the other fields hold.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, fullName string) (*dto.AuthResponse, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		logger.CtxWithError(ctx, "failed to hash password", err)
		return nil, apperrors.ErrServer.WithError(err)
	}

	user, err := s.userRepo.CreateUser(ctx, email, stored, strings.TrimSpace(fullName))
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		logger.CtxWithError(ctx, "failed to create user", err)
		return nil, apperrors.ErrServer.WithError(err)
	}
	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)

	return s.startSession(ctx, user)
}

func (s *AuthServiceImpl) startSession(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	sessionID := uuid.NewString()
	token, expiresAt, err := s.tokens.Issue(sessionID, user.ID, user.Email)
	if err != nil {
		logger.CtxWithError(ctx, "failed to issue session token", err)
		return nil, apperrors.ErrServer.WithError(err)
	}

	u := *user
	session := Session{
		ID:              sessionID,
		IsAuthenticated: true,
		CurrentUser:     &u,
		StartedAt:       s.now(),
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	logger.CtxInfo(ctx, "session started", "user_id", user.ID, "session_id", sessionID)
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) Logout() {
	s.mu.Lock()
	prev := s.session.ID
	s.session = Session{}
	s.mu.Unlock()

	if prev != "" {
		logger.Info("session ended", "session_id", prev)
	}
}

func (s *AuthServiceImpl) Authenticate(token string) (Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Session{}, apperrors.ErrInvalidToken
	}
	current := s.Session()
	if !current.IsAuthenticated || current.ID != claims.SessionID {
		return Session{}, apperrors.ErrInvalidToken
	}
	return current, nil
}

func (s *AuthServiceImpl) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.session
	if out.CurrentUser != nil {
		u := *out.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

func (s *AuthServiceImpl) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.IsAuthenticated
}

func (s *AuthServiceImpl) CurrentUser() *models.User {
	return s.Session().CurrentUser
}
