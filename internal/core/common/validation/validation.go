package validation

import (
	"fmt"
	"strings"
	"time"

	errors "github.com/condosys/condo-management/internal"
)

// Validator accumulates field errors and folds them into one AppError. DTOs
// call the checks they need and then Err().
type Validator struct {
	errs []errors.ValidationError
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, errors.ValidationError{
		Field:   field,
		Message: message,
		Code:    string(errors.ErrCodeValidationFailed),
	})
}

func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("%s is required", field))
	}
	return v
}

func (v *Validator) MinLength(field, value string, min int) *Validator {
	if len(value) < min {
		v.add(field, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	return v
}

func (v *Validator) MaxLength(field, value string, max int) *Validator {
	if len(value) > max {
		v.add(field, fmt.Sprintf("%s must not exceed %d characters", field, max))
	}
	return v
}

func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	at := strings.Index(value, "@")
	if at < 1 || at == len(value)-1 || !strings.Contains(value[at:], ".") {
		v.add(field, fmt.Sprintf("%s must be a valid email address", field))
	}
	return v
}

func (v *Validator) Positive(field string, value int64) *Validator {
	if value <= 0 {
		v.add(field, fmt.Sprintf("%s must be positive", field))
	}
	return v
}

func (v *Validator) NonNegative(field string, value int64) *Validator {
	if value < 0 {
		v.add(field, fmt.Sprintf("%s must not be negative", field))
	}
	return v
}

// OneOf checks membership in a closed vocabulary.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
	return v
}

// TimeOrder checks that start is strictly before end.
func (v *Validator) TimeOrder(startField string, start, end time.Time) *Validator {
	if !start.Before(end) {
		v.add(startField, fmt.Sprintf("%s must be before the end time", startField))
	}
	return v
}

// Err returns nil when all checks passed, otherwise one VALIDATION_ERROR
// AppError carrying every field error collected.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return errors.NewValidationError("validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: v.errs})
}
