package budget

import "github.com/condosys/condo-management/internal/core/common/validation"

type CreateBudgetDTO struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ProviderID  *int64  `json:"provider_id"`
	AmountCents int64   `json:"amount_cents"`
	Notes       *string `json:"notes"`
}

func (d *CreateBudgetDTO) Validate() error {
	v := validation.New()
	v.Required("title", d.Title)
	v.OneOf("type", d.Type, TypeIncome, TypeExpense)
	v.Positive("amount_cents", d.AmountCents)
	if d.ProviderID != nil {
		v.Positive("provider_id", *d.ProviderID)
	}
	return v.Err()
}

type DecisionDTO struct {
	Comments *string `json:"comments"`
}
