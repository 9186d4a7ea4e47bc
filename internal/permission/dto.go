package permission

import (
	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/auth"
)

type GrantDTO struct {
	GroupID    int64  `json:"group_id"`
	FunctionID int64  `json:"function_id"`
	Action     string `json:"action"`
}

// Validate also narrows Action to the closed vocabulary.
func (d *GrantDTO) Validate() (auth.Action, error) {
	if d.GroupID <= 0 {
		return "", internal.NewValidationError("group_id must be positive", internal.ErrCodeValidationFailed)
	}
	if d.FunctionID <= 0 {
		return "", internal.NewValidationError("function_id must be positive", internal.ErrCodeValidationFailed)
	}
	action, err := auth.ParseAction(d.Action)
	if err != nil {
		return "", internal.NewValidationError("action must be one of: execute, read, write", internal.ErrCodeInvalidAction)
	}
	return action, nil
}
