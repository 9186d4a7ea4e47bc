package meeting

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
	Create(ctx context.Context, organizerID int64, dto CreateMeetingDTO) (*Meeting, error)
	GetByID(ctx context.Context, id int64) (*Meeting, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Meeting, error)
	Update(ctx context.Context, id int64, actorID int64, dto UpdateMeetingDTO) (*Meeting, error)
	Complete(ctx context.Context, id int64, actorID int64) (*Meeting, error)
	Cancel(ctx context.Context, id int64, actorID int64) (*Meeting, error)
	History(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error)
	CreateMinute(ctx context.Context, issuerID int64, dto CreateMinuteDTO) (*Minute, error)
	GetMinute(ctx context.Context, id int64) (*Minute, error)
	UpdateMinute(ctx context.Context, id int64, actorID int64, dto UpdateMinuteDTO) (*Minute, error)
	SendMinute(ctx context.Context, id int64, actorID int64) (*Minute, error)
	MinuteHistory(ctx context.Context, id int64, limit, offset int) ([]audit.Record, error)
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

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return actor, true
}

func (h *Handler) id(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid "+name+" id")
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var dto CreateMeetingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Create(r.Context(), actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)
	status := Status(r.URL.Query().Get("status"))

	meetings, err := h.Service.List(r.Context(), status, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"meetings": meetings})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "meeting")
	if !ok {
		return
	}

	m, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "meeting")
	if !ok {
		return
	}

	var dto UpdateMeetingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Update(r.Context(), id, actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "meeting")
	if !ok {
		return
	}

	m, err := h.Service.Complete(r.Context(), id, actor.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "meeting")
	if !ok {
		return
	}

	m, err := h.Service.Cancel(r.Context(), id, actor.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "meeting")
	if !ok {
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

func (h *Handler) CreateMinute(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var dto CreateMinuteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.CreateMinute(r.Context(), actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) GetMinute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "minute")
	if !ok {
		return
	}

	m, err := h.Service.GetMinute(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) UpdateMinute(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "minute")
	if !ok {
		return
	}

	var dto UpdateMinuteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.UpdateMinute(r.Context(), id, actor.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) SendMinute(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := h.id(w, r, "minute")
	if !ok {
		return
	}

	m, err := h.Service.SendMinute(r.Context(), id, actor.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) MinuteHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r, "minute")
	if !ok {
		return
	}

	limit, offset := transport.Pagination(r)

	records, err := h.Service.MinuteHistory(r.Context(), id, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"history": records})
}
