package postgres

import (
	"context"

	"github.com/condosys/condo-management/internal/audit"
	"gorm.io/gorm"
)

// AuditRepository implements the audit.Repository interface using GORM.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

// CreateRecords inserts all rows in the caller's transaction so the entity
// update and its audit trail commit or roll back together.
func (r *AuditRepository) CreateRecords(tx *gorm.DB, records []audit.Record) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(&records).Error
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]audit.Record, error) {
	var records []audit.Record
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("changed_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}

func (r *AuditRepository) CreateLog(ctx context.Context, entry *audit.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) ListLogs(ctx context.Context, filter audit.LogFilter, limit, offset int) ([]audit.Log, error) {
	query := r.db.WithContext(ctx).Model(&audit.Log{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	var logs []audit.Log
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, err
}
