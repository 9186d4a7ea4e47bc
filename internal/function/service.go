package function

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
)

type Repository interface {
	Create(ctx context.Context, f *Function) error
	GetByID(ctx context.Context, id int64) (*Function, error)
	GetByCode(ctx context.Context, code string) (*Function, error)
	List(ctx context.Context, module string, limit, offset int) ([]Function, error)
	Update(ctx context.Context, f *Function) error
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

func (s *Service) Create(ctx context.Context, dto CreateFunctionDTO) (*Function, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCode(ctx, dto.Code); err == nil && existing != nil {
		return nil, internal.NewConflictError("function code already registered", internal.ErrCodeValidationFailed)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check function code", err)
	}

	f := &Function{
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
		Module:      dto.Module,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("failed to create function", "error", err, "code", dto.Code)
		return nil, internal.NewInternalError("failed to create function", err)
	}

	s.logger.Info("function registered", "function_id", f.ID, "code", f.Code, "module", f.Module)
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Function, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("function not found", internal.ErrCodeFunctionNotFound)
		}
		return nil, internal.NewInternalError("failed to load function", err)
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, module string, limit, offset int) ([]Function, error) {
	functions, err := s.repo.List(ctx, module, limit, offset)
	if err != nil {
		s.logger.Error("failed to list functions", "error", err)
		return nil, internal.NewInternalError("failed to list functions", err)
	}
	return functions, nil
}

// Deactivate soft-disables a function. The engine denies every permission
// referencing an inactive function, so this is the kill switch for a feature.
func (s *Service) Deactivate(ctx context.Context, id int64) (*Function, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.IsActive = false
	if err := s.repo.Update(ctx, f); err != nil {
		s.logger.Error("failed to deactivate function", "error", err, "function_id", id)
		return nil, internal.NewInternalError("failed to deactivate function", err)
	}

	s.logger.Info("function deactivated", "function_id", id, "code", f.Code)
	return f, nil
}
