package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/condosys/condo-management/internal/auth"
	"github.com/condosys/condo-management/internal/transport"
)

type ServiceAPI interface {
	CreateArea(ctx context.Context, dto CreateAreaDTO) (*Area, error)
	GetArea(ctx context.Context, id int64) (*Area, error)
	ListAreas(ctx context.Context, limit, offset int) ([]Area, error)
	UpdateArea(ctx context.Context, id int64, dto UpdateAreaDTO) (*Area, error)
	Create(ctx context.Context, userID int64, dto CreateSchedulingDTO) (*Scheduling, error)
	GetByID(ctx context.Context, id int64) (*Scheduling, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]Scheduling, error)
	Approve(ctx context.Context, id int64, approverID int64, dto DecisionDTO) (*Scheduling, error)
	Reject(ctx context.Context, id int64, dto DecisionDTO) (*Scheduling, error)
	Cancel(ctx context.Context, id int64, userID int64) (*Scheduling, error)
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

func (h *Handler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var dto CreateAreaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateArea(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	areas, err := h.Service.ListAreas(r.Context(), limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"areas": areas})
}

func (h *Handler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid area id")
		return
	}

	a, err := h.Service.GetArea(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid area id")
		return
	}

	var dto UpdateAreaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateArea(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateSchedulingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sc, err := h.Service.Create(r.Context(), actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	var filter ListFilter
	q := r.URL.Query()
	if raw := q.Get("area_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.AreaID = v
		}
	}
	if raw := q.Get("unit_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.UnitID = v
		}
	}
	if raw := q.Get("status"); raw != "" {
		filter.Status = Status(raw)
	}

	schedulings, err := h.Service.List(r.Context(), filter, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"schedulings": schedulings})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid scheduling id")
		return
	}

	sc, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sc)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid scheduling id")
		return
	}

	var dto DecisionDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sc, err := h.Service.Approve(r.Context(), id, actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sc)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid scheduling id")
		return
	}

	var dto DecisionDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sc, err := h.Service.Reject(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sc)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid scheduling id")
		return
	}

	sc, err := h.Service.Cancel(r.Context(), id, actor.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sc)
}
