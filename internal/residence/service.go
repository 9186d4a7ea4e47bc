package residence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
)

type Repository interface {
	CreateCondominium(ctx context.Context, c *Condominium) error
	GetCondominium(ctx context.Context, id int64) (*Condominium, error)
	ListCondominiums(ctx context.Context, limit, offset int) ([]Condominium, error)
	CreateUnit(ctx context.Context, u *Unit) error
	GetUnit(ctx context.Context, id int64) (*Unit, error)
	ListUnits(ctx context.Context, condominiumID int64, limit, offset int) ([]Unit, error)
	CreateResident(ctx context.Context, r *Resident) error
	GetResident(ctx context.Context, id int64) (*Resident, error)
	ListResidents(ctx context.Context, unitID int64, limit, offset int) ([]Resident, error)
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

func (s *Service) CreateCondominium(ctx context.Context, dto CreateCondominiumDTO) (*Condominium, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &Condominium{
		Name:      dto.Name,
		CNPJ:      dto.CNPJ,
		Address:   dto.Address,
		Phone:     dto.Phone,
		Email:     dto.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateCondominium(ctx, c); err != nil {
		s.logger.Error("failed to create condominium", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create condominium", err)
	}

	s.logger.Info("condominium created", "condominium_id", c.ID)
	return c, nil
}

func (s *Service) GetCondominium(ctx context.Context, id int64) (*Condominium, error) {
	c, err := s.repo.GetCondominium(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("condominium not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load condominium", err)
	}
	return c, nil
}

func (s *Service) ListCondominiums(ctx context.Context, limit, offset int) ([]Condominium, error) {
	items, err := s.repo.ListCondominiums(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list condominiums", "error", err)
		return nil, internal.NewInternalError("failed to list condominiums", err)
	}
	return items, nil
}

func (s *Service) CreateUnit(ctx context.Context, dto CreateUnitDTO) (*Unit, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetCondominium(ctx, dto.CondominiumID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &Unit{
		CondominiumID: dto.CondominiumID,
		Block:         dto.Block,
		Number:        dto.Number,
		Floor:         dto.Floor,
		Type:          dto.Type,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateUnit(ctx, u); err != nil {
		s.logger.Error("failed to create unit", "error", err, "condominium_id", dto.CondominiumID)
		return nil, internal.NewInternalError("failed to create unit", err)
	}

	s.logger.Info("unit created", "unit_id", u.ID, "number", u.Number)
	return u, nil
}

func (s *Service) GetUnit(ctx context.Context, id int64) (*Unit, error) {
	u, err := s.repo.GetUnit(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("unit not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load unit", err)
	}
	return u, nil
}

func (s *Service) ListUnits(ctx context.Context, condominiumID int64, limit, offset int) ([]Unit, error) {
	units, err := s.repo.ListUnits(ctx, condominiumID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list units", "error", err)
		return nil, internal.NewInternalError("failed to list units", err)
	}
	return units, nil
}

func (s *Service) CreateResident(ctx context.Context, dto CreateResidentDTO) (*Resident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetUnit(ctx, dto.UnitID); err != nil {
		return nil, err
	}

	r := &Resident{
		UserID:       dto.UserID,
		UnitID:       dto.UnitID,
		Relationship: dto.Relationship,
		IsOwner:      dto.IsOwner,
		IsPrimary:    dto.IsPrimary,
		MoveInDate:   dto.MoveInDateValue(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateResident(ctx, r); err != nil {
		s.logger.Error("failed to create resident", "error", err, "user_id", dto.UserID, "unit_id", dto.UnitID)
		return nil, internal.NewInternalError("failed to create resident", err)
	}

	s.logger.Info("resident linked", "resident_id", r.ID, "user_id", r.UserID, "unit_id", r.UnitID)
	return r, nil
}

func (s *Service) GetResident(ctx context.Context, id int64) (*Resident, error) {
	r, err := s.repo.GetResident(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("resident not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load resident", err)
	}
	return r, nil
}

func (s *Service) ListResidents(ctx context.Context, unitID int64, limit, offset int) ([]Resident, error) {
	residents, err := s.repo.ListResidents(ctx, unitID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list residents", "error", err)
		return nil, internal.NewInternalError("failed to list residents", err)
	}
	return residents, nil
}
