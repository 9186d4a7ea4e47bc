package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/condosys/condo-management/internal/notice"
)

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) Create(ctx context.Context, n *notice.Notice) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*notice.Notice, error) {
	var n notice.Notice
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoticeRepository) List(ctx context.Context, limit, offset int) ([]notice.Notice, error) {
	var notices []notice.Notice
	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notices).Error
	return notices, err
}

// ListBoard returns active, unexpired notices, newest first.
func (r *NoticeRepository) ListBoard(ctx context.Context, now time.Time, limit, offset int) ([]notice.Notice, error) {
	var notices []notice.Notice
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notices).Error
	return notices, err
}

func (r *NoticeRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *NoticeRepository) UpdateTx(tx *gorm.DB, n *notice.Notice) error {
	return tx.Save(n).Error
}

func (r *NoticeRepository) DeleteTx(tx *gorm.DB, id int64) error {
	return tx.Delete(&notice.Notice{}, id).Error
}
