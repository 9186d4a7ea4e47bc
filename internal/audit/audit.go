package audit

import (
	"fmt"
	"time"
)

// Entity types with a change history. Each value is the entity_type key used
// in the audit_records table.
const (
	EntityEmployee  = "employee"
	EntityPatrimony = "patrimony"
	EntityBudget    = "budget"
	EntityMeeting   = "meeting"
	EntityMinute    = "minute"
	EntityNotice    = "notice"
)

// Record is one field-level change from one mutation. Rows are append-only:
// they are never updated or deleted, and they deliberately carry no foreign
// key to their subject so history survives a hard delete of the entity.
type Record struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EntityType string    `json:"entity_type" gorm:"column:entity_type;not null"`
	EntityID   int64     `json:"entity_id" gorm:"column:entity_id;not null"`
	FieldName  string    `json:"field_name" gorm:"column:field_name;not null"`
	OldValue   *string   `json:"old_value" gorm:"column:old_value"`
	NewValue   *string   `json:"new_value" gorm:"column:new_value"`
	ChangedBy  int64     `json:"changed_by" gorm:"column:changed_by;not null"`
	ChangedAt  time.Time `json:"changed_at" gorm:"column:changed_at;not null"`
}

func (Record) TableName() string {
	return "audit_records"
}

// Log is the system-wide request audit row, one per inbound API request.
type Log struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	UserID         *int64    `json:"user_id" gorm:"column:user_id"`
	Action         string    `json:"action" gorm:"column:action;not null"`
	EntityType     *string   `json:"entity_type" gorm:"column:entity_type"`
	RequestID      string    `json:"request_id" gorm:"column:request_id"`
	IPAddress      string    `json:"ip_address" gorm:"column:ip_address"`
	UserAgent      string    `json:"user_agent" gorm:"column:user_agent"`
	RequestMethod  string    `json:"request_method" gorm:"column:request_method"`
	RequestPath    string    `json:"request_path" gorm:"column:request_path"`
	RequestData    string    `json:"request_data" gorm:"column:request_data"`
	ResponseStatus int       `json:"response_status" gorm:"column:response_status"`
	DurationMs     int64     `json:"duration_ms" gorm:"column:duration_ms"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Log) TableName() string {
	return "logs"
}

// Change is one before/after pair for a single field. Values are already
// serialized to text by the caller; nil means the field had (or has) no value.
type Change struct {
	Field string
	Old   *string
	New   *string
}

// Builder collects the fields of a mutation that actually changed. Unchanged
// fields produce no Change, so a no-op update records nothing.
type Builder struct {
	changes []Change
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Field(name string, oldVal, newVal *string) *Builder {
	if equal(oldVal, newVal) {
		return b
	}
	b.changes = append(b.changes, Change{Field: name, Old: oldVal, New: newVal})
	return b
}

func (b *Builder) Changes() []Change {
	return b.changes
}

func equal(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// Serialization helpers. History values are stored as text; these keep the
// representation deterministic so re-running the same diff yields the same rows.

func String(s string) *string {
	return &s
}

func StringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func Int(i int64) *string {
	s := fmt.Sprintf("%d", i)
	return &s
}

func IntPtr(i *int64) *string {
	if i == nil {
		return nil
	}
	return Int(*i)
}

func Bool(b bool) *string {
	s := "false"
	if b {
		s = "true"
	}
	return &s
}

// Cents renders an integer amount of cents as a fixed two-decimal string,
// e.g. 120000 -> "1200.00".
func Cents(c int64) *string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	s := fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
	return &s
}

func CentsPtr(c *int64) *string {
	if c == nil {
		return nil
	}
	return Cents(*c)
}

// Date renders a date-only value as ISO-8601 (yyyy-mm-dd).
func Date(t time.Time) *string {
	s := t.Format("2006-01-02")
	return &s
}

func DatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return Date(*t)
}

// Time renders a timestamp as RFC3339 in UTC.
func Time(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func TimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return Time(*t)
}
