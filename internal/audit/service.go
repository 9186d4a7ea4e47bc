package audit

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Repository defines the data access methods for audit records and request logs.
type Repository interface {
	CreateRecords(tx *gorm.DB, records []Record) error
	ListByEntity(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]Record, error)
	CreateLog(ctx context.Context, entry *Log) error
	ListLogs(ctx context.Context, filter LogFilter, limit, offset int) ([]Log, error)
}

// LogFilter narrows the request log query. Zero values mean "no filter".
type LogFilter struct {
	UserID     int64
	Action     string
	EntityType string
}

// Service is the audit trail recorder plus its read side.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record persists one Record per change inside the caller's transaction. All
// rows of one call share the same timestamp and actor. The caller is expected
// to run its entity update in the same tx, so a failed audit insert rolls the
// entity change back too.
func (s *Service) Record(tx *gorm.DB, entityType string, entityID int64, actorID int64, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}

	now := time.Now().UTC()
	records := make([]Record, len(changes))
	for i, c := range changes {
		records[i] = Record{
			EntityType: entityType,
			EntityID:   entityID,
			FieldName:  c.Field,
			OldValue:   c.Old,
			NewValue:   c.New,
			ChangedBy:  actorID,
			ChangedAt:  now,
		}
	}

	if err := s.repo.CreateRecords(tx, records); err != nil {
		s.logger.Error("failed to persist audit records",
			"error", err,
			"entity_type", entityType,
			"entity_id", entityID,
			"changes", len(changes))
		return err
	}

	return nil
}

// History returns the change history of one entity, chronological ascending.
func (s *Service) History(ctx context.Context, entityType string, entityID int64, limit, offset int) ([]Record, error) {
	records, err := s.repo.ListByEntity(ctx, entityType, entityID, limit, offset)
	if err != nil {
		s.logger.Error("failed to load audit history", "error", err, "entity_type", entityType, "entity_id", entityID)
		return nil, err
	}
	return records, nil
}

// WriteLog appends one request log row. Failures are logged and swallowed:
// the request already completed and must not fail because of its audit row.
func (s *Service) WriteLog(ctx context.Context, entry *Log) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		s.logger.Error("failed to write request log",
			"error", err,
			"method", entry.RequestMethod,
			"path", entry.RequestPath)
	}
}

// Logs returns request log rows, newest first.
func (s *Service) Logs(ctx context.Context, filter LogFilter, limit, offset int) ([]Log, error) {
	logs, err := s.repo.ListLogs(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list request logs", "error", err)
		return nil, err
	}
	return logs, nil
}
