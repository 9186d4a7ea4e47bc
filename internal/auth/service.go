package auth

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetCredentials(ctx context.Context, username string) (passwordHash string, userID int64, active bool, err error)
	GetSessionUser(ctx context.Context, userID int64) (*User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	engine         *Engine
	bcryptCost     int
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, engine *Engine, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		engine:         engine,
		bcryptCost:     bcryptCost,
	}
}

// Engine exposes the permission engine wired into this service.
func (s *Service) Engine() *Engine {
	return s.engine
}

// Authenticate validates credentials and returns tokens
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	storedHash, userID, active, err := s.userRepo.GetCredentials(ctx, dto.Username)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}
	if !active {
		return AuthTokens{}, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetSessionUser(ctx, userID)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, userID, time.Now().UTC()); err != nil {
		// login still succeeds; last_login is best effort
		_ = err
	}

	return s.issueTokens(user)
}

// RefreshTokens validates a refresh token and returns a fresh pair.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}

	user, err := s.userRepo.GetSessionUser(ctx, userID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !user.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *User) (AuthTokens, error) {
	id := strconv.FormatInt(user.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(id, user.Username, user.GroupID)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(id, user.Username, user.GroupID)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetSessionUser loads the session user for the auth middleware.
func (s *Service) GetSessionUser(ctx context.Context, userID int64) (*User, error) {
	return s.userRepo.GetSessionUser(ctx, userID)
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
