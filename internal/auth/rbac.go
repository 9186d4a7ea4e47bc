package auth

import (
	"log/slog"
	"net/http"
)

// RBACAuthorization wraps the permission engine as chi middleware. Denials are
// warnings, never system errors; only a storage failure in the engine is a 500.
type RBACAuthorization struct {
	engine *Engine
	logger *slog.Logger
}

func NewRBACAuthorization(engine *Engine, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		engine: engine,
		logger: logger,
	}
}

// RequirePermission gates a route on (group, function, action).
func (ra *RBACAuthorization) RequirePermission(functionCode string, action Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, err := ra.engine.Authorize(r.Context(), user, functionCode, action)
			if err != nil {
				ra.logger.ErrorContext(r.Context(), "authorization check failed",
					"error", err,
					"user_id", user.ID,
					"function_code", functionCode,
					"action", action)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"group_id", user.GroupID,
					"function_code", functionCode,
					"action", action)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireExecute is shorthand for the common (code, "execute") gate, which is
// what the seeded function registry uses almost everywhere.
func (ra *RBACAuthorization) RequireExecute(functionCode string) func(http.Handler) http.Handler {
	return ra.RequirePermission(functionCode, ActionExecute)
}
