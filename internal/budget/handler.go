package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/condosys/condo-management/internal/audit"
	"github.com/condosys/condo-management/internal/auth"
	"github.com/condosys/condo-management/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, requesterID int64, dto CreateBudgetDTO) (*Budget, error)
	GetByID(ctx context.Context, id int64) (*Budget, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Budget, error)
	Submit(ctx context.Context, id int64, actorID int64) (*Budget, error)
	Approve(ctx context.Context, id int64, approverID int64, dto DecisionDTO) (*Budget, error)
	Reject(ctx context.Context, id int64, actorID int64, dto DecisionDTO) (*Budget, error)
	History(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error)
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.Service.Create(r.Context(), actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)
	status := Status(r.URL.Query().Get("status"))

	budgets, err := h.Service.List(r.Context(), status, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"budgets": budgets})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid budget id")
		return
	}

	b, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(ctx context.Context, id, actorID int64, dto DecisionDTO) (*Budget, error) {
		return h.Service.Submit(ctx, id, actorID)
	})
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id, actorID int64, dto DecisionDTO) (*Budget, error)) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid budget id")
		return
	}

	var dto DecisionDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	b, err := fn(r.Context(), id, actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid budget id")
		return
	}

	limit, offset := transport.Pagination(r)

	records, err := h.Service.History(r.Context(), id, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"history": records})
}
