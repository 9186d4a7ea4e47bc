package notice

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
	Create(ctx context.Context, n *Notice) error
	GetByID(ctx context.Context, id int64) (*Notice, error)
	List(ctx context.Context, limit, offset int) ([]Notice, error)
	ListBoard(ctx context.Context, now time.Time, limit, offset int) ([]Notice, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpdateTx(tx *gorm.DB, n *Notice) error
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

func (s *Service) Create(ctx context.Context, publisherID int64, dto CreateNoticeDTO) (*Notice, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	n := &Notice{
		Title:       dto.Title,
		Content:     dto.Content,
		Type:        dto.Type,
		Priority:    dto.Priority,
		PublishedBy: publisherID,
		PublishedAt: now,
		ExpiresAt:   dto.ExpiresAt,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("failed to create notice", "error", err, "title", dto.Title)
		return nil, internal.NewInternalError("failed to create notice", err)
	}

	s.logger.Info("notice published", "notice_id", n.ID, "priority", n.Priority)
	return n, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("notice not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load notice", err)
	}
	return n, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Notice, error) {
	notices, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list notices", "error", err)
		return nil, internal.NewInternalError("failed to list notices", err)
	}
	return notices, nil
}

// Board returns what residents see: active notices that have not expired,
// newest first.
func (s *Service) Board(ctx context.Context, limit, offset int) ([]Notice, error) {
	notices, err := s.repo.ListBoard(ctx, time.Now().UTC(), limit, offset)
	if err != nil {
		s.logger.Error("failed to load notice board", "error", err)
		return nil, internal.NewInternalError("failed to load notice board", err)
	}
	return notices, nil
}

func (s *Service) Update(ctx context.Context, id int64, actorID int64, dto UpdateNoticeDTO) (*Notice, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	n, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b := audit.NewBuilder()

	if dto.Title != nil && *dto.Title != n.Title {
		b.Field("title", audit.String(n.Title), audit.String(*dto.Title))
		n.Title = *dto.Title
	}
	if dto.Content != nil && *dto.Content != n.Content {
		b.Field("content", audit.String(n.Content), audit.String(*dto.Content))
		n.Content = *dto.Content
	}
	if dto.Type != nil && *dto.Type != n.Type {
		b.Field("type", audit.String(n.Type), audit.String(*dto.Type))
		n.Type = *dto.Type
	}
	if dto.Priority != nil && *dto.Priority != n.Priority {
		b.Field("priority", audit.String(n.Priority), audit.String(*dto.Priority))
		n.Priority = *dto.Priority
	}
	if dto.ExpiresAt != nil {
		b.Field("expires_at", audit.TimePtr(n.ExpiresAt), audit.TimePtr(dto.ExpiresAt))
		n.ExpiresAt = dto.ExpiresAt
	}
	if dto.IsActive != nil && *dto.IsActive != n.IsActive {
		b.Field("is_active", audit.Bool(n.IsActive), audit.Bool(*dto.IsActive))
		n.IsActive = *dto.IsActive
	}

	changes := b.Changes()
	if len(changes) == 0 {
		return n, nil
	}

	n.UpdatedAt = time.Now().UTC()

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, n); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityNotice, n.ID, actorID, changes)
	})
	if err != nil {
		s.logger.Error("failed to update notice", "error", err, "notice_id", id)
		return nil, internal.NewInternalError("failed to update notice", err)
	}

	s.logger.Info("notice updated", "notice_id", id, "changed_fields", len(changes))
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id int64, actorID int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityNotice, id, actorID, []audit.Change{
			{Field: "deleted", Old: audit.Bool(false), New: audit.Bool(true)},
		})
	})
	if err != nil {
		s.logger.Error("failed to delete notice", "error", err, "notice_id", id)
		return internal.NewInternalError("failed to delete notice", err)
	}

	s.logger.Info("notice deleted", "notice_id", id)
	return nil
}

func (s *Service) History(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error) {
	records, err := s.recorder.History(ctx, audit.EntityNotice, id, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to load notice history", err)
	}
	return records, nil
}
