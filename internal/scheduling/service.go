package scheduling

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal"
)

type AreaRepository interface {
	Create(ctx context.Context, a *Area) error
	GetByID(ctx context.Context, id int64) (*Area, error)
	List(ctx context.Context, limit, offset int) ([]Area, error)
	Update(ctx context.Context, a *Area) error
}

type Repository interface {
	Create(ctx context.Context, sc *Scheduling) error
	GetByID(ctx context.Context, id int64) (*Scheduling, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Scheduling, error)
	Update(ctx context.Context, sc *Scheduling) error
	HasOverlap(ctx context.Context, areaID int64, start, end time.Time) (bool, error)
}

// ListFilter narrows the scheduling list. Zero values mean "no filter".
type ListFilter struct {
	AreaID int64
	UnitID int64
	UserID int64
	Status Status
}

type Service struct {
	areas  AreaRepository
	repo   Repository
	logger *slog.Logger
}

func NewService(areas AreaRepository, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		areas:  areas,
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateArea(ctx context.Context, dto CreateAreaDTO) (*Area, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &Area{
		Name:             dto.Name,
		Description:      dto.Description,
		Capacity:         dto.Capacity,
		HourlyRateCents:  dto.HourlyRateCents,
		RequiresApproval: dto.RequiresApproval,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.areas.Create(ctx, a); err != nil {
		s.logger.Error("failed to create area", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create area", err)
	}

	s.logger.Info("area created", "area_id", a.ID, "requires_approval", a.RequiresApproval)
	return a, nil
}

func (s *Service) GetArea(ctx context.Context, id int64) (*Area, error) {
	a, err := s.areas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("area not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load area", err)
	}
	return a, nil
}

func (s *Service) ListAreas(ctx context.Context, limit, offset int) ([]Area, error) {
	areas, err := s.areas.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list areas", "error", err)
		return nil, internal.NewInternalError("failed to list areas", err)
	}
	return areas, nil
}

func (s *Service) UpdateArea(ctx context.Context, id int64, dto UpdateAreaDTO) (*Area, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.GetArea(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		a.Name = *dto.Name
	}
	if dto.Description != nil {
		a.Description = dto.Description
	}
	if dto.Capacity != nil {
		a.Capacity = dto.Capacity
	}
	if dto.HourlyRateCents != nil {
		a.HourlyRateCents = dto.HourlyRateCents
	}
	if dto.RequiresApproval != nil {
		a.RequiresApproval = *dto.RequiresApproval
	}
	if dto.IsActive != nil {
		a.IsActive = *dto.IsActive
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.areas.Update(ctx, a); err != nil {
		s.logger.Error("failed to update area", "error", err, "area_id", id)
		return nil, internal.NewInternalError("failed to update area", err)
	}

	return a, nil
}

// Create books an area for the requesting user. Every scheduling starts
// pending; an area that does not require approval is approved immediately by
// the system on behalf of the requester.
func (s *Service) Create(ctx context.Context, userID int64, dto CreateSchedulingDTO) (*Scheduling, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	area, err := s.GetArea(ctx, dto.AreaID)
	if err != nil {
		return nil, err
	}
	if !area.IsActive {
		return nil, internal.NewValidationError("area is not available for booking", internal.ErrCodeValidationFailed)
	}

	overlap, err := s.repo.HasOverlap(ctx, dto.AreaID, dto.StartDatetime, dto.EndDatetime)
	if err != nil {
		return nil, internal.NewInternalError("failed to check scheduling overlap", err)
	}
	if overlap {
		return nil, internal.NewConflictError("area is already booked for this period", internal.ErrCodeValidationFailed)
	}

	now := time.Now().UTC()
	sc := &Scheduling{
		AreaID:        dto.AreaID,
		UnitID:        dto.UnitID,
		UserID:        userID,
		StartDatetime: dto.StartDatetime.UTC(),
		EndDatetime:   dto.EndDatetime.UTC(),
		Status:        StatusPending,
		Purpose:       dto.Purpose,
		GuestsCount:   dto.GuestsCount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if !area.RequiresApproval {
		sc.Status = StatusApproved
		sc.ApprovedBy = &userID
		sc.ApprovedAt = &now
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		s.logger.Error("failed to create scheduling", "error", err, "area_id", dto.AreaID)
		return nil, internal.NewInternalError("failed to create scheduling", err)
	}

	s.logger.Info("scheduling created", "scheduling_id", sc.ID, "area_id", sc.AreaID, "status", sc.Status)
	return sc, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Scheduling, error) {
	sc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("scheduling not found", internal.ErrCodeRecordNotFound)
		}
		return nil, internal.NewInternalError("failed to load scheduling", err)
	}
	return sc, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Scheduling, error) {
	schedulings, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list schedulings", "error", err)
		return nil, internal.NewInternalError("failed to list schedulings", err)
	}
	return schedulings, nil
}

// Approve moves pending -> approved and stamps who approved and when. A second
// approve hits the terminal-state check and fails with an invalid-status error.
func (s *Service) Approve(ctx context.Context, id int64, approverID int64, dto DecisionDTO) (*Scheduling, error) {
	return s.transition(ctx, id, StatusApproved, func(sc *Scheduling, now time.Time) {
		sc.ApprovedBy = &approverID
		sc.ApprovedAt = &now
		if dto.Notes != nil {
			sc.Notes = dto.Notes
		}
	})
}

func (s *Service) Reject(ctx context.Context, id int64, dto DecisionDTO) (*Scheduling, error) {
	return s.transition(ctx, id, StatusRejected, func(sc *Scheduling, now time.Time) {
		if dto.Notes != nil {
			sc.Notes = dto.Notes
		}
	})
}

// Cancel is only available to the user who created the scheduling.
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) (*Scheduling, error) {
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.UserID != userID {
		return nil, internal.NewForbiddenError("only the requester can cancel a scheduling", internal.ErrCodePermissionDenied)
	}

	return s.transition(ctx, id, StatusCancelled, nil)
}

func (s *Service) transition(ctx context.Context, id int64, target Status, apply func(*Scheduling, time.Time)) (*Scheduling, error) {
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !sc.Status.CanTransitionTo(target) {
		return nil, internal.NewValidationError(transitionError(sc.Status, target), internal.ErrCodeInvalidStatus)
	}

	now := time.Now().UTC()
	sc.Status = target
	sc.UpdatedAt = now
	if apply != nil {
		apply(sc, now)
	}

	if err := s.repo.Update(ctx, sc); err != nil {
		s.logger.Error("failed to update scheduling status", "error", err, "scheduling_id", id, "target", target)
		return nil, internal.NewInternalError("failed to update scheduling", err)
	}

	s.logger.Info("scheduling status changed", "scheduling_id", id, "status", target)
	return sc, nil
}
