package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByUsername(ctx, dto.Username); err == nil && existing != nil {
		return nil, internal.NewConflictError("username already in use", internal.ErrCodeDuplicateUsername)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check username", err)
	}

	if dto.Email != "" {
		if existing, err := s.repo.GetByEmail(ctx, dto.Email); err == nil && existing != nil {
			return nil, internal.NewConflictError("email already in use", internal.ErrCodeDuplicateEmail)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewInternalError("failed to check email", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &User{
		Username:     dto.Username,
		PasswordHash: string(hash),
		Email:        dto.Email,
		FullName:     dto.FullName,
		Phone:        dto.Phone,
		GroupID:      dto.GroupID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "group_id", u.GroupID)
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]User, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil && *dto.Email != u.Email {
		if existing, err := s.repo.GetByEmail(ctx, *dto.Email); err == nil && existing != nil && existing.ID != id {
			return nil, internal.NewConflictError("email already in use", internal.ErrCodeDuplicateEmail)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewInternalError("failed to check email", err)
		}
		u.Email = *dto.Email
	}
	if dto.FullName != nil {
		u.FullName = *dto.FullName
	}
	if dto.Phone != nil {
		u.Phone = dto.Phone
	}
	if dto.GroupID != nil {
		u.GroupID = *dto.GroupID
	}
	if dto.IsActive != nil {
		u.IsActive = *dto.IsActive
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	return u, nil
}

// ChangePassword verifies the current password before replacing the hash.
func (s *Service) ChangePassword(ctx context.Context, id int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return internal.NewUnauthorizedError("current password is incorrect", internal.ErrCodeInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to change password", "error", err, "user_id", id)
		return internal.NewInternalError("failed to change password", err)
	}

	s.logger.Info("password changed", "user_id", id)
	return nil
}

// Delete removes a user. Resident links cascade at the database level; audit
// records are untouched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
