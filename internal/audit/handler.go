package audit

import (
	"context"
	"net/http"
	"strconv"

	"github.com/condosys/condo-management/internal"
	"github.com/condosys/condo-management/internal/transport"
)

type ServiceAPI interface {
	Logs(ctx context.Context, filter LogFilter, limit, offset int) ([]Log, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListLogs serves GET /logs: the raw request log, newest first.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	logs, err := h.Service.Logs(r.Context(), LogFilter{}, limit, offset)
	if err != nil {
		h.HandleServiceError(w, internal.NewInternalError("failed to list logs", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

// Query serves GET /audit with optional user_id, action and entity_type
// filters, newest first.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	filter := LogFilter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entity_type"),
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		filter.UserID = id
	}

	logs, err := h.Service.Logs(r.Context(), filter, limit, offset)
	if err != nil {
		h.HandleServiceError(w, internal.NewInternalError("failed to query audit log", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}
