package group

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
)

type Repository interface {
	Create(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id int64) (*Group, error)
	List(ctx context.Context, limit, offset int) ([]Group, error)
	Update(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id int64) error
	CountUsers(ctx context.Context, groupID int64) (int64, error)
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

func (s *Service) Create(ctx context.Context, dto CreateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &Group{
		Name:        dto.Name,
		Description: dto.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		s.logger.Error("failed to create group", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create group", err)
	}

	s.logger.Info("group created", "group_id", g.ID, "name", g.Name)
	return g, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("group not found", internal.ErrCodeGroupNotFound)
		}
		return nil, internal.NewInternalError("failed to load group", err)
	}
	return g, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Group, error) {
	groups, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list groups", "error", err)
		return nil, internal.NewInternalError("failed to list groups", err)
	}
	return groups, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		g.Name = *dto.Name
	}
	if dto.Description != nil {
		g.Description = dto.Description
	}
	if dto.IsActive != nil {
		g.IsActive = *dto.IsActive
	}
	g.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, g); err != nil {
		s.logger.Error("failed to update group", "error", err, "group_id", id)
		return nil, internal.NewInternalError("failed to update group", err)
	}

	return g, nil
}

// Delete refuses to remove a group that still has members. Permissions cascade
// at the database level.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to count group members", err)
	}
	if count > 0 {
		return internal.NewConflictError("group still has users assigned", internal.ErrCodeGroupHasUsers)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete group", "error", err, "group_id", id)
		return internal.NewInternalError("failed to delete group", err)
	}

	s.logger.Info("group deleted", "group_id", id)
	return nil
}
