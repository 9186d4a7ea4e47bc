package budget

import (
	"fmt"
	"time"
)

// Status is the closed budget state set.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// validTransitions is the full transition table: draft -> submitted,
// submitted -> approved | rejected. Approved and rejected are terminal.
var validTransitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Budget types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Budget is a spending (or income) proposal moving through the approval flow.
// Amounts are integer cents; every status change is audited.
type Budget struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Type        string     `json:"type" gorm:"column:type;not null"`
	Title       string     `json:"title" gorm:"column:title;not null"`
	Description *string    `json:"description" gorm:"column:description"`
	ProviderID  *int64     `json:"provider_id" gorm:"column:provider_id"`
	AmountCents int64      `json:"amount_cents" gorm:"column:amount_cents;not null"`
	Status      Status     `json:"status" gorm:"column:status;not null"`
	RequestedBy int64      `json:"requested_by" gorm:"column:requested_by;not null"`
	ApprovedBy  *int64     `json:"approved_by" gorm:"column:approved_by"`
	RequestedAt time.Time  `json:"requested_at" gorm:"column:requested_at"`
	ApprovedAt  *time.Time `json:"approved_at" gorm:"column:approved_at"`
	Notes       *string    `json:"notes" gorm:"column:notes"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}

func transitionError(from, to Status) string {
	return fmt.Sprintf("cannot transition budget from %s to %s", from, to)
}
