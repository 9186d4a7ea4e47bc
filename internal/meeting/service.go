package meeting

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
	Create(ctx context.Context, m *Meeting) error
	GetByID(ctx context.Context, id int64) (*Meeting, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Meeting, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpdateTx(tx *gorm.DB, m *Meeting) error
}

type MinuteRepository interface {
	Create(ctx context.Context, m *Minute) error
	GetByID(ctx context.Context, id int64) (*Minute, error)
	GetByMeetingID(ctx context.Context, meetingID int64) (*Minute, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	UpdateTx(tx *gorm.DB, m *Minute) error
}

type Recorder interface {
	Record(tx *gorm.DB, entityType string, entityID, actorID int64, changes []audit.Change) error
	History(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]audit.Record, error)
}

type Service struct {
	repo     Repository
	minutes  MinuteRepository
	recorder Recorder
	logger   *slog.Logger
}

func NewService(repo Repository, minutes MinuteRepository, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		minutes:  minutes,
		recorder: recorder,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, organizerID int64, dto CreateMeetingDTO) (*Meeting, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := &Meeting{
		Title:       dto.Title,
		Description: dto.Description,
		MeetingDate: dto.MeetingDate.UTC(),
		Location:    dto.Location,
		OrganizerID: organizerID,
		Status:      StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create meeting", "error", err, "title", dto.Title)
		return nil, internal.NewInternalError("failed to create meeting", err)
	}

	s.logger.Info("meeting created", "meeting_id", m.ID, "meeting_date", m.MeetingDate)
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Meeting, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("meeting not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load meeting", err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, status Status, limit, offset int) ([]Meeting, error) {
	meetings, err := s.repo.List(ctx, status, limit, offset)
	if err != nil {
		s.logger.Error("failed to list meetings", "error", err)
		return nil, internal.NewInternalError("failed to list meetings", err)
	}
	return meetings, nil
}

// Update applies the partial DTO and audits each changed field.
func (s *Service) Update(ctx context.Context, id int64, actorID int64, dto UpdateMeetingDTO) (*Meeting, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b := audit.NewBuilder()

	if dto.Title != nil && *dto.Title != m.Title {
		b.Field("title", audit.String(m.Title), audit.String(*dto.Title))
		m.Title = *dto.Title
	}
	if dto.Description != nil {
		b.Field("description", audit.StringPtr(m.Description), audit.StringPtr(dto.Description))
		m.Description = dto.Description
	}
	if dto.MeetingDate != nil {
		newDate := dto.MeetingDate.UTC()
		b.Field("meeting_date", audit.Time(m.MeetingDate), audit.Time(newDate))
		m.MeetingDate = newDate
	}
	if dto.Location != nil {
		b.Field("location", audit.StringPtr(m.Location), audit.StringPtr(dto.Location))
		m.Location = dto.Location
	}

	changes := b.Changes()
	if len(changes) == 0 {
		return m, nil
	}

	m.UpdatedAt = time.Now().UTC()

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, m); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityMeeting, m.ID, actorID, changes)
	})
	if err != nil {
		s.logger.Error("failed to update meeting", "error", err, "meeting_id", id)
		return nil, internal.NewInternalError("failed to update meeting", err)
	}

	s.logger.Info("meeting updated", "meeting_id", id, "changed_fields", len(changes))
	return m, nil
}

// Complete moves scheduled -> completed.
func (s *Service) Complete(ctx context.Context, id int64, actorID int64) (*Meeting, error) {
	return s.transition(ctx, id, StatusCompleted, actorID)
}

// Cancel moves scheduled -> cancelled.
func (s *Service) Cancel(ctx context.Context, id int64, actorID int64) (*Meeting, error) {
	return s.transition(ctx, id, StatusCancelled, actorID)
}

func (s *Service) transition(ctx context.Context, id int64, target Status, actorID int64) (*Meeting, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !m.Status.CanTransitionTo(target) {
		return nil, internal.NewValidationError(transitionError(m.Status, target), internal.ErrCodeInvalidStatus)
	}

	oldStatus := m.Status
	m.Status = target
	m.UpdatedAt = time.Now().UTC()

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, m); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityMeeting, m.ID, actorID, []audit.Change{
			{Field: "status", Old: audit.String(string(oldStatus)), New: audit.String(string(target))},
		})
	})
	if err != nil {
		s.logger.Error("failed to transition meeting", "error", err, "meeting_id", id, "target", target)
		return nil, internal.NewInternalError("failed to update meeting", err)
	}

	s.logger.Info("meeting status changed", "meeting_id", id, "from", oldStatus, "to", target)
	return m, nil
}

func (s *Service) History(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error) {
	records, err := s.recorder.History(ctx, audit.EntityMeeting, id, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to load meeting history", err)
	}
	return records, nil
}

// CreateMinute issues the minute of a meeting. One minute per meeting.
func (s *Service) CreateMinute(ctx context.Context, issuerID int64, dto CreateMinuteDTO) (*Minute, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetByID(ctx, dto.MeetingID); err != nil {
		return nil, err
	}

	if existing, err := s.minutes.GetByMeetingID(ctx, dto.MeetingID); err == nil && existing != nil {
		return nil, internal.NewConflictError("meeting already has a minute", internal.ErrCodeValidationFailed)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check minute", err)
	}

	now := time.Now().UTC()
	m := &Minute{
		MeetingID: dto.MeetingID,
		Content:   dto.Content,
		Attendees: dto.Attendees,
		Decisions: dto.Decisions,
		IssuedBy:  issuerID,
		IssuedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.minutes.Create(ctx, m); err != nil {
		s.logger.Error("failed to create minute", "error", err, "meeting_id", dto.MeetingID)
		return nil, internal.NewInternalError("failed to create minute", err)
	}

	s.logger.Info("minute issued", "minute_id", m.ID, "meeting_id", m.MeetingID)
	return m, nil
}

func (s *Service) GetMinute(ctx context.Context, id int64) (*Minute, error) {
	m, err := s.minutes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("minute not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load minute", err)
	}
	return m, nil
}

// UpdateMinute applies the partial DTO and audits each changed field.
func (s *Service) UpdateMinute(ctx context.Context, id int64, actorID int64, dto UpdateMinuteDTO) (*Minute, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.GetMinute(ctx, id)
	if err != nil {
		return nil, err
	}

	b := audit.NewBuilder()

	if dto.Content != nil && *dto.Content != m.Content {
		b.Field("content", audit.String(m.Content), audit.String(*dto.Content))
		m.Content = *dto.Content
	}
	if dto.Attendees != nil {
		b.Field("attendees", audit.StringPtr(m.Attendees), audit.StringPtr(dto.Attendees))
		m.Attendees = dto.Attendees
	}
	if dto.Decisions != nil {
		b.Field("decisions", audit.StringPtr(m.Decisions), audit.StringPtr(dto.Decisions))
		m.Decisions = dto.Decisions
	}

	changes := b.Changes()
	if len(changes) == 0 {
		return m, nil
	}

	m.UpdatedAt = time.Now().UTC()

	err = s.minutes.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.minutes.UpdateTx(tx, m); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityMinute, m.ID, actorID, changes)
	})
	if err != nil {
		s.logger.Error("failed to update minute", "error", err, "minute_id", id)
		return nil, internal.NewInternalError("failed to update minute", err)
	}

	s.logger.Info("minute updated", "minute_id", id, "changed_fields", len(changes))
	return m, nil
}

// SendMinute stamps sent_at. Sending twice is a conflict.
func (s *Service) SendMinute(ctx context.Context, id int64, actorID int64) (*Minute, error) {
	m, err := s.GetMinute(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.SentAt != nil {
		return nil, internal.NewConflictError("minute was already sent", internal.ErrCodeInvalidStatus)
	}

	now := time.Now().UTC()
	m.SentAt = &now
	m.UpdatedAt = now

	err = s.minutes.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.minutes.UpdateTx(tx, m); err != nil {
			return err
		}
		return s.recorder.Record(tx, audit.EntityMinute, m.ID, actorID, []audit.Change{
			{Field: "sent_at", Old: nil, New: audit.Time(now)},
		})
	})
	if err != nil {
		s.logger.Error("failed to send minute", "error", err, "minute_id", id)
		return nil, internal.NewInternalError("failed to send minute", err)
	}

	s.logger.Info("minute sent", "minute_id", id)
	return m, nil
}

func (s *Service) MinuteHistory(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error) {
	records, err := s.recorder.History(ctx, audit.EntityMinute, id, limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to load minute history", err)
	}
	return records, nil
}
