package permission

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/auth"
)

type Repository interface {
	Create(ctx context.Context, p *Permission) error
	GetByID(ctx context.Context, id int64) (*Permission, error)
	GetByTuple(ctx context.Context, groupID, functionID int64, action auth.Action) (*Permission, error)
	List(ctx context.Context, groupID int64, limit, offset int) ([]Permission, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Grant creates a permission tuple. A duplicate tuple is a conflict, backed by
// a unique index so concurrent grants cannot slip through.
func (s *Service) Grant(ctx context.Context, dto GrantDTO) (*Permission, error) {
	action, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByTuple(ctx, dto.GroupID, dto.FunctionID, action); err == nil && existing != nil {
		return nil, internal.NewConflictError("permission already granted", internal.ErrCodeDuplicatePermission)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check permission", err)
	}

	p := &Permission{
		GroupID:    dto.GroupID,
		FunctionID: dto.FunctionID,
		Action:     action,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to grant permission",
			"error", err,
			"group_id", dto.GroupID,
			"function_id", dto.FunctionID,
			"action", action)
		return nil, internal.NewInternalError("failed to grant permission", err)
	}

	s.logger.Info("permission granted",
		"permission_id", p.ID,
		"group_id", p.GroupID,
		"function_id", p.FunctionID,
		"action", p.Action)
	return p, nil
}

func (s *Service) List(ctx context.Context, groupID int64, limit, offset int) ([]Permission, error) {
	perms, err := s.repo.List(ctx, groupID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, internal.NewInternalError("failed to list permissions", err)
	}
	return perms, nil
}

func (s *Service) Revoke(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewNotFoundError("permission not found", internal.ErrCodePermissionNotFound)
		}
		return internal.NewInternalError("failed to load permission", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to revoke permission", "error", err, "permission_id", id)
		return internal.NewInternalError("failed to revoke permission", err)
	}

	s.logger.Info("permission revoked",
		"permission_id", id,
		"group_id", p.GroupID,
		"function_id", p.FunctionID,
		"action", p.Action)
	return nil
}
