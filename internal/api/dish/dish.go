package dish

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"velvet_bite/internal/api"
	dto "velvet_bite/internal/api/dto/dish"
	"velvet_bite/internal/converter"
	"velvet_bite/internal/model"
	"velvet_bite/internal/service"
	"velvet_bite/pkg/req"
	"velvet_bite/pkg/resp"
)

type HandlerDeps struct {
	Serv service.DishService
}

type Handler struct {
	serv service.DishService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.serv.List(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDishListResponse(dishes))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := dishID(w, r)
	if !ok {
		return
	}

	d, err := h.serv.Get(r.Context(), id)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDishResponse(*d))
}

// Create создает блюдо, отвечает 201 {id}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DishRequest](r.Body)
	if err != nil {
		api.InvalidJSON(w, err)
		return
	}

	d, err := converter.ToDish(payload)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	id, err := h.serv.Create(r.Context(), d)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.CreateDishResponse{ID: id})
}

// Update частичное обновление блюда
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := dishID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.DishRequest](r.Body)
	if err != nil {
		api.InvalidJSON(w, err)
		return
	}

	patch, err := converter.ToDishPatch(payload)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	if _, err := h.serv.Update(r.Context(), id, patch); err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.OkResponse{Ok: true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := dishID(w, r)
	if !ok {
		return
	}

	if err := h.serv.Delete(r.Context(), id); err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.OkResponse{Ok: true})
}

// dishID ID из пути. Нечисловой ID = блюда нет
func dishID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		api.WriteError(w, r, model.ErrNotFound)
		return 0, false
	}
	return id, true
}
