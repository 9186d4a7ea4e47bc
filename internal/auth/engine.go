package auth

import (
	"context"
	"log/slog"
)

// EngineRepository answers the single question the permission engine asks.
type EngineRepository interface {
	// HasPermission reports whether a permission row matches
	// (groupID, functionCode, action) with both the group and the function
	// still active. A function code with no row is simply false, not an error.
	HasPermission(ctx context.Context, groupID int64, functionCode string, action Action) (bool, error)
}

// Engine decides whether a user may perform an action on a named function.
// Each call is a fresh lookup; authorization volume is low enough that no
// caching is warranted.
type Engine struct {
	repo   EngineRepository
	logger *slog.Logger
}

func NewEngine(repo EngineRepository, logger *slog.Logger) *Engine {
	return &Engine{
		repo:   repo,
		logger: logger,
	}
}

// Authorize returns true iff the user's group holds a matching permission.
// Absence of permission is a normal outcome and never an error; the error
// return is reserved for storage failures.
func (e *Engine) Authorize(ctx context.Context, user *User, functionCode string, action Action) (bool, error) {
	if user == nil || !user.IsActive {
		return false, nil
	}

	ok, err := e.repo.HasPermission(ctx, user.GroupID, functionCode, action)
	if err != nil {
		e.logger.Error("permission lookup failed",
			"error", err,
			"group_id", user.GroupID,
			"function_code", functionCode,
			"action", action)
		return false, err
	}

	return ok, nil
}
