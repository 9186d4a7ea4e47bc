package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
)

type Repository interface {
	Create(ctx context.Context, p *Provider) error
	GetByID(ctx context.Context, id int64) (*Provider, error)
	List(ctx context.Context, serviceType string, limit, offset int) ([]Provider, error)
	Update(ctx context.Context, p *Provider) error
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

func (s *Service) Create(ctx context.Context, dto CreateProviderDTO) (*Provider, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Provider{
		Name:          dto.Name,
		CNPJCPF:       dto.CNPJCPF,
		ServiceType:   dto.ServiceType,
		Phone:         dto.Phone,
		Email:         dto.Email,
		Address:       dto.Address,
		ContactPerson: dto.ContactPerson,
		Notes:         dto.Notes,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create provider", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create provider", err)
	}

	s.logger.Info("provider created", "provider_id", p.ID, "service_type", p.ServiceType)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Provider, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("provider not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load provider", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, serviceType string, limit, offset int) ([]Provider, error) {
	providers, err := s.repo.List(ctx, serviceType, limit, offset)
	if err != nil {
		s.logger.Error("failed to list providers", "error", err)
		return nil, internal.NewInternalError("failed to list providers", err)
	}
	return providers, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateProviderDTO) (*Provider, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.ServiceType != nil {
		p.ServiceType = *dto.ServiceType
	}
	if dto.Phone != nil {
		p.Phone = dto.Phone
	}
	if dto.Email != nil {
		p.Email = dto.Email
	}
	if dto.Address != nil {
		p.Address = dto.Address
	}
	if dto.ContactPerson != nil {
		p.ContactPerson = dto.ContactPerson
	}
	if dto.Notes != nil {
		p.Notes = dto.Notes
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update provider", "error", err, "provider_id", id)
		return nil, internal.NewInternalError("failed to update provider", err)
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete provider", "error", err, "provider_id", id)
		return internal.NewInternalError("failed to delete provider", err)
	}

	s.logger.Info("provider deleted", "provider_id", id)
	return nil
}
