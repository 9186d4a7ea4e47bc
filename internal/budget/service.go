package budget

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
	Create(ctx context.Context, b *Budget) error
	GetByID(ctx context.Context, id int64) (*Budget, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Budget, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpdateTx(tx *gorm.DB, b *Budget) error
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

func (s *Service) Create(ctx context.Context, requesterID int64, dto CreateBudgetDTO) (*Budget, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &Budget{
		Type:        dto.Type,
		Title:       dto.Title,
		Description: dto.Description,
		ProviderID:  dto.ProviderID,
		AmountCents: dto.AmountCents,
		Status:      StatusDraft,
		RequestedBy: requesterID,
		RequestedAt: now,
		Notes:       dto.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("failed to create budget", "error", err, "title", dto.Title)
		return nil, internal.NewInternalError("failed to create budget", err)
	}

	s.logger.Info("budget created", "budget_id", b.ID, "type", b.Type, "amount_cents", b.AmountCents)
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("budget not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load budget", err)
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, status Status, limit, offset int) ([]Budget, error) {
	budgets, err := s.repo.List(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("failed to list budgets", "error", err)
		return nil, internal.NewInternalError("failed to list budgets", err)
	}
	return budgets, nil
}

// Submit moves draft -> submitted.
func (s *Service) Submit(ctx context.Context, id int64, actorID int64) (*Budget, error) {
	return s.transition(ctx, id, StatusSubmitted, actorID, nil)
}

// Approve moves submitted -> approved and stamps the approver.
func (s *Service) Approve(ctx context.Context, id int64, approverID int64, dto DecisionDTO) (*Budget, error) {
	return s.transition(ctx, id, StatusApproved, approverID, func(b *Budget, now time.Time) {
		b.ApprovedBy = &approverID
		b.ApprovedAt = &now
		if dto.Comments != nil {
			b.Notes = dto.Comments
		}
	})
}

// Reject moves submitted -> rejected.
func (s *Service) Reject(ctx context.Context, id int64, actorID int64, dto DecisionDTO) (*Budget, error) {
	return s.transition(ctx, id, StatusRejected, actorID, func(b *Budget, now time.Time) {
		if dto.Comments != nil {
			b.Notes = dto.Comments
		}
	})
}

// transition enforces the state machine and records the status change in the
// same transaction as the row update, so history and state never diverge.
func (s *Service) transition(ctx context.Context, id int64, target Status, actorID int64, apply func(*Budget, time.Time)) (*Budget, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.Status.CanTransitionTo(target) {
		return nil, internal.NewValidationError(transitionError(b.Status, target), internal.ErrCodeInvalidStatus)
	}

	oldStatus := b.Status
	now := time.Now().UTC()
	b.Status = target
	b.UpdatedAt = now
	if apply != nil {
		apply(b, now)
	}

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, b); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityBudget, b.ID, actorID, []audit.Change{
			{Field: "status", Old: audit.String(string(oldStatus)), New: audit.String(string(target))},
		})
	})
	if err != nil {
		s.logger.Error("failed to transition budget", "error", err, "budget_id", id, "target", target)
		return nil, internal.NewInternalError("failed to update budget", err)
	}

	s.logger.Info("budget status changed", "budget_id", id, "from", oldStatus, "to", target)
	return b, nil
}

// History returns the budget's status change log, oldest first.
func (s *Service) History(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error) {
	records, err := s.recorder.History(ctx, audit.EntityBudget, id, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to load budget history", err)
	}
	return records, nil
}
