package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/scheduling"
)

type AreaRepository struct {
	db *gorm.DB
}

func NewAreaRepository(db *gorm.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

func (r *AreaRepository) Create(ctx context.Context, a *scheduling.Area) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AreaRepository) GetByID(ctx context.Context, id int64) (*scheduling.Area, error) {
	var a scheduling.Area
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AreaRepository) List(ctx context.Context, limit, offset int) ([]scheduling.Area, error) {
	var areas []scheduling.Area
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&areas).Error
	return areas, err
}

func (r *AreaRepository) Update(ctx context.Context, a *scheduling.Area) error {
	return r.db.WithContext(ctx).Save(a).Error
}

type SchedulingRepository struct {
	db *gorm.DB
}

func NewSchedulingRepository(db *gorm.DB) *SchedulingRepository {
	return &SchedulingRepository{db: db}
}

func (r *SchedulingRepository) Create(ctx context.Context, sc *scheduling.Scheduling) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *SchedulingRepository) GetByID(ctx context.Context, id int64) (*scheduling.Scheduling, error) {
	var sc scheduling.Scheduling
	if err := r.db.WithContext(ctx).First(&sc, id).Error; err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *SchedulingRepository) List(ctx context.Context, filter scheduling.ListFilter, limit, offset int) ([]scheduling.Scheduling, error) {
	q := r.db.WithContext(ctx).Order("start_datetime DESC").Limit(limit).Offset(offset)
	if filter.AreaID > 0 {
		q = q.Where("area_id = ?", filter.AreaID)
	}
	if filter.UnitID > 0 {
		q = q.Where("unit_id = ?", filter.UnitID)
	}
	if filter.UserID > 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var schedulings []scheduling.Scheduling
	err := q.Find(&schedulings).Error
	return schedulings, err
}

func (r *SchedulingRepository) Update(ctx context.Context, sc *scheduling.Scheduling) error {
	return r.db.WithContext(ctx).Save(sc).Error
}

// HasOverlap checks whether the area already has a pending or approved
// scheduling intersecting [start, end).
func (r *SchedulingRepository) HasOverlap(ctx context.Context, areaID int64, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&scheduling.Scheduling{}).
		Where("area_id = ?", areaID).
		Where("status IN ?", []string{string(scheduling.StatusPending), string(scheduling.StatusApproved)}).
		Where("start_datetime < ? AND end_datetime > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
