package patrimony

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/audit"
)

type Repository interface {
	Create(ctx context.Context, p *Patrimony) error
	GetByID(ctx context.Context, id int64) (*Patrimony, error)
	List(ctx context.Context, category string, limit, offset int) ([]Patrimony, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpdateTx(tx *gorm.DB, p *Patrimony) error
	DeleteTx(tx *gorm.DB, id int64) error
}

type Recorder interface {
	Record(tx *gorm.DB, entityType string, entityID, actorID int64, changes []audit.Change) error
	History(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]audit.Record, error)
}

type Service struct {
	repo     Repository
	recorder Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, dto CreatePatrimonyDTO) (*Patrimony, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &Patrimony{
		Name:                  dto.Name,
		Description:           dto.Description,
		Category:              dto.Category,
		Location:              dto.Location,
		AcquisitionDate:       dto.AcquisitionDateValue(),
		AcquisitionValueCents: dto.AcquisitionValueCents,
		CurrentValueCents:     dto.CurrentValueCents,
		Condition:             dto.Condition,
		SerialNumber:          dto.SerialNumber,
		Notes:                 dto.Notes,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create patrimony", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create patrimony", err)
	}

	s.logger.Info("patrimony created", "patrimony_id", p.ID, "category", p.Category)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Patrimony, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("patrimony not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load patrimony", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, category string, limit, offset int) ([]Patrimony, error) {
	items, err := s.repo.List(ctx, category, limit, offset)
	if err != nil {
		s.logger.Error("failed to list patrimonies", "error", err)
		return nil, internal.NewInternalError("failed to list patrimonies", err)
	}
	return items, nil
}

// Update applies the partial DTO, auditing each changed field in the same
// transaction as the row update.
func (s *Service) Update(ctx context.Context, id int64, actorID int64, dto UpdatePatrimonyDTO) (*Patrimony, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b := audit.NewBuilder()

	if dto.Name != nil && *dto.Name != p.Name {
		b.Field("name", audit.String(p.Name), audit.String(*dto.Name))
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		b.Field("description", audit.StringPtr(p.Description), audit.StringPtr(dto.Description))
		p.Description = dto.Description
	}
	if dto.Category != nil && *dto.Category != p.Category {
		b.Field("category", audit.String(p.Category), audit.String(*dto.Category))
		p.Category = *dto.Category
	}
	if dto.Location != nil {
		b.Field("location", audit.StringPtr(p.Location), audit.StringPtr(dto.Location))
		p.Location = dto.Location
	}
	if dto.CurrentValueCents != nil {
		b.Field("current_value", audit.CentsPtr(p.CurrentValueCents), audit.CentsPtr(dto.CurrentValueCents))
		p.CurrentValueCents = dto.CurrentValueCents
	}
	if dto.Condition != nil {
		b.Field("condition", audit.StringPtr(p.Condition), audit.StringPtr(dto.Condition))
		p.Condition = dto.Condition
	}
	if dto.Notes != nil {
		b.Field("notes", audit.StringPtr(p.Notes), audit.StringPtr(dto.Notes))
		p.Notes = dto.Notes
	}
	if dto.IsActive != nil && *dto.IsActive != p.IsActive {
		b.Field("is_active", audit.Bool(p.IsActive), audit.Bool(*dto.IsActive))
		p.IsActive = *dto.IsActive
	}

	changes := b.Changes()
	if len(changes) == 0 {
		return p, nil
	}

	p.UpdatedAt = time.Now().UTC()

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, p); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityPatrimony, p.ID, actorID, changes)
	})
	if err != nil {
		s.logger.Error("failed to update patrimony", "error", err, "patrimony_id", id)
		return nil, internal.NewInternalError("failed to update patrimony", err)
	}

	s.logger.Info("patrimony updated", "patrimony_id", id, "changed_fields", len(changes))
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityPatrimony, id, actorID, []audit.Change{
			{Field: "deleted", Old: audit.Bool(false), New: audit.Bool(true)},
		})
	})
	if err != nil {
		s.logger.Error("failed to delete patrimony", "error", err, "patrimony_id", id)
		return internal.NewInternalError("failed to delete patrimony", err)
	}

	s.logger.Info("patrimony deleted", "patrimony_id", id)
	return nil
}

func (s *Service) History(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error) {
	records, err := s.recorder.History(ctx, audit.EntityPatrimony, id, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to load patrimony history", err)
	}
	return records, nil
}
