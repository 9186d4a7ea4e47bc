package visitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
)

type Repository interface {
	Create(ctx context.Context, v *Visitor) error
	GetByID(ctx context.Context, id int64) (*Visitor, error)
	List(ctx context.Context, unitID int64, onlyInside bool, limit, offset int) ([]Visitor, error)
	Update(ctx context.Context, v *Visitor) error
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

// Register records a visitor entering the condominium now.
func (s *Service) Register(ctx context.Context, registrarID int64, dto RegisterVisitorDTO) (*Visitor, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &Visitor{
		Name:         dto.Name,
		Document:     dto.Document,
		UnitID:       dto.UnitID,
		EntryTime:    now,
		VehiclePlate: dto.VehiclePlate,
		Purpose:      dto.Purpose,
		AuthorizedBy: dto.AuthorizedBy,
		RegisteredBy: registrarID,
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("failed to register visitor", "error", err, "unit_id", dto.UnitID)
		return nil, internal.NewInternalError("failed to register visitor", err)
	}

	s.logger.Info("visitor registered", "visitor_id", v.ID, "unit_id", v.UnitID)
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Visitor, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("visitor not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load visitor", err)
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, unitID int64, onlyInside bool, limit, offset int) ([]Visitor, error) {
	visitors, err := s.repo.List(ctx, unitID, onlyInside, limit, offset)
	if err != nil {
		s.logger.Error("failed to list visitors", "error", err)
		return nil, internal.NewInternalError("failed to list visitors", err)
	}
	return visitors, nil
}

// RecordExit stamps exit_time. A visitor who already left is a conflict.
func (s *Service) RecordExit(ctx context.Context, id int64) (*Visitor, error) {
	v, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.ExitTime != nil {
		return nil, internal.NewConflictError("visitor exit was already recorded", internal.ErrCodeInvalidStatus)
	}

	now := time.Now().UTC()
	v.ExitTime = &now

	if err := s.repo.Update(ctx, v); err != nil {
		s.logger.Error("failed to record visitor exit", "error", err, "visitor_id", id)
		return nil, internal.NewInternalError("failed to record visitor exit", err)
	}

	s.logger.Info("visitor exit recorded", "visitor_id", id)
	return v, nil
}
