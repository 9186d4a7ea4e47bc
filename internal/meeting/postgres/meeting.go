package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/meeting"
)

type MeetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(ctx context.Context, m *meeting.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*meeting.Meeting, error) {
	var m meeting.Meeting
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeetingRepository) List(ctx context.Context, status meeting.Status, limit, offset int) ([]meeting.Meeting, error) {
	q := r.db.WithContext(ctx).Order("meeting_date DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var meetings []meeting.Meeting
	err := q.Find(&meetings).Error
	return meetings, err
}

func (r *MeetingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *MeetingRepository) UpdateTx(tx *gorm.DB, m *meeting.Meeting) error {
	return tx.Save(m).Error
}

type MinuteRepository struct {
	db *gorm.DB
}

func NewMinuteRepository(db *gorm.DB) *MinuteRepository {
	return &MinuteRepository{db: db}
}

func (r *MinuteRepository) Create(ctx context.Context, m *meeting.Minute) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MinuteRepository) GetByID(ctx context.Context, id int64) (*meeting.Minute, error) {
	var m meeting.Minute
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MinuteRepository) GetByMeetingID(ctx context.Context, meetingID int64) (*meeting.Minute, error) {
	var m meeting.Minute
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MinuteRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *MinuteRepository) UpdateTx(tx *gorm.DB, m *meeting.Minute) error {
	return tx.Save(m).Error
}
