package employee

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
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]Employee, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpdateTx(tx *gorm.DB, e *Employee) error
	DeleteTx(tx *gorm.DB, id int64) error
}

// Recorder is the slice of the audit service this package needs.
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

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &Employee{
		Name:        dto.Name,
		CPF:         dto.CPF,
		Role:        dto.Role,
		Phone:       dto.Phone,
		Email:       dto.Email,
		Address:     dto.Address,
		HireDate:    dto.HireDateValue(),
		SalaryCents: dto.SalaryCents,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create employee", "error", err, "cpf", dto.CPF)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", e.ID, "role", e.Role)
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("employee not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load employee", err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool, limit, offset int) ([]Employee, error) {
	employees, err := s.repo.List(ctx, activeOnly, limit, offset)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	return employees, nil
}

// Update applies the partial DTO and records one audit row per field that
// actually changed, in the same transaction as the row update. A no-op update
// writes no audit rows.
func (s *Service) Update(ctx context.Context, id int64, actorID int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b := audit.NewBuilder()

	if dto.Name != nil && *dto.Name != e.Name {
		b.Field("name", audit.String(e.Name), audit.String(*dto.Name))
		e.Name = *dto.Name
	}
	if dto.Role != nil && *dto.Role != e.Role {
		b.Field("role", audit.String(e.Role), audit.String(*dto.Role))
		e.Role = *dto.Role
	}
	if dto.Phone != nil {
		b.Field("phone", audit.StringPtr(e.Phone), audit.StringPtr(dto.Phone))
		e.Phone = dto.Phone
	}
	if dto.Email != nil {
		b.Field("email", audit.StringPtr(e.Email), audit.StringPtr(dto.Email))
		e.Email = dto.Email
	}
	if dto.Address != nil {
		b.Field("address", audit.StringPtr(e.Address), audit.StringPtr(dto.Address))
		e.Address = dto.Address
	}
	if dto.TerminationDate != nil {
		newDate := dto.TerminationDateValue()
		b.Field("termination_date", audit.DatePtr(e.TerminationDate), audit.DatePtr(newDate))
		e.TerminationDate = newDate
	}
	if dto.SalaryCents != nil {
		b.Field("salary", audit.CentsPtr(e.SalaryCents), audit.CentsPtr(dto.SalaryCents))
		e.SalaryCents = dto.SalaryCents
	}
	if dto.IsActive != nil && *dto.IsActive != e.IsActive {
		b.Field("is_active", audit.Bool(e.IsActive), audit.Bool(*dto.IsActive))
		e.IsActive = *dto.IsActive
	}

	changes := b.Changes()
	if len(changes) == 0 {
		return e, nil
	}

	e.UpdatedAt = time.Now().UTC()

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, e); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityEmployee, e.ID, actorID, changes)
	})
	if err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id, "changed_fields", len(changes))
	return e, nil
}

// Delete removes the row and leaves a final audit record marking the deletion.
// History rows carry no foreign key, so they survive.
func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityEmployee, id, actorID, []audit.Change{
			{Field: "deleted", Old: audit.Bool(false), New: audit.Bool(true)},
		})
	})
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

// History returns the employee's change log, oldest first.
func (s *Service) History(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error) {
	records, err := s.recorder.History(ctx, audit.EntityEmployee, id, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to load employee history", err)
	}
	return records, nil
}
