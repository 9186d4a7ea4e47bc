package residence

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/condosys/condo-management/internal/transport"
)

type ServiceAPI interface {
	CreateCondominium(ctx context.Context, dto CreateCondominiumDTO) (*Condominium, error)
	GetCondominium(ctx context.Context, id int64) (*Condominium, error)
	ListCondominiums(ctx context.Context, limit, offset int) ([]Condominium, error)
	CreateUnit(ctx context.Context, dto CreateUnitDTO) (*Unit, error)
	GetUnit(ctx context.Context, id int64) (*Unit, error)
	ListUnits(ctx context.Context, condominiumID int64, limit, offset int) ([]Unit, error)
	CreateResident(ctx context.Context, dto CreateResidentDTO) (*Resident, error)
	GetResident(ctx context.Context, id int64) (*Resident, error)
	ListResidents(ctx context.Context, unitID int64, limit, offset int) ([]Resident, error)
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

func (h *Handler) CreateCondominium(w http.ResponseWriter, r *http.Request) {
	var dto CreateCondominiumDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.CreateCondominium(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListCondominiums(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	items, err := h.Service.ListCondominiums(r.Context(), limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"condominiums": items})
}

func (h *Handler) GetCondominium(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid condominium id")
		return
	}

	c, err := h.Service.GetCondominium(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var dto CreateUnitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.CreateUnit(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	var condominiumID int64
	if raw := r.URL.Query().Get("condominium_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			condominiumID = v
		}
	}

	units, err := h.Service.ListUnits(r.Context(), condominiumID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"units": units})
}

func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid unit id")
		return
	}

	u, err := h.Service.GetUnit(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) CreateResident(w http.ResponseWriter, r *http.Request) {
	var dto CreateResidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.Service.CreateResident(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) ListResidents(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	var unitID int64
	if raw := r.URL.Query().Get("unit_id"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			unitID = v
		}
	}

	residents, err := h.Service.ListResidents(r.Context(), unitID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"residents": residents})
}

func (h *Handler) GetResident(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid resident id")
		return
	}

	res, err := h.Service.GetResident(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, res)
}
