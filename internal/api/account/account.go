package account

import (
	"net/http"

	"velvet_bite/internal/api"
	"velvet_bite/internal/converter"
	"velvet_bite/internal/service"
	"velvet_bite/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AccountService
}

type Handler struct {
	serv service.AccountService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.serv.List(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAccountListResponse(accounts))
}
