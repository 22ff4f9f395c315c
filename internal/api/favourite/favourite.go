package favourite

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"velvet_bite/internal/api"
	dto "velvet_bite/internal/api/dto/favourite"
	"velvet_bite/internal/converter"
	"velvet_bite/internal/model"
	"velvet_bite/internal/service"
	"velvet_bite/pkg/req"
	"velvet_bite/pkg/resp"
)

type HandlerDeps struct {
	Serv service.FavouriteService
}

type Handler struct {
	serv service.FavouriteService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// List избранное аккаунта /{account_id}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.Atoi(chi.URLParam(r, "account_id"))
	if err != nil {
		api.WriteError(w, r, model.ErrNotFound)
		return
	}

	favs, err := h.serv.List(r.Context(), accountID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToFavouriteListResponse(favs))
}

// Add добавляет блюдо в избранное, отвечает 201 {id}
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.FavouriteRequest](r.Body)
	if err != nil {
		api.InvalidJSON(w, err)
		return
	}

	fav, err := converter.ToFavourite(payload)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	id, err := h.serv.Add(r.Context(), fav)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.CreateFavouriteResponse{ID: id})
}
