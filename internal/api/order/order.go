package order

import (
	"net/http"

	"velvet_bite/internal/api"
	dto "velvet_bite/internal/api/dto/order"
	"velvet_bite/internal/converter"
	"velvet_bite/internal/service"
	"velvet_bite/pkg/req"
	"velvet_bite/pkg/resp"
)

type HandlerDeps struct {
	Serv service.OrderService
}

type Handler struct {
	serv service.OrderService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Create оформляет заказ со скидкой клиента
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.OrderRequest](r.Body)
	if err != nil {
		api.InvalidJSON(w, err)
		return
	}

	o, err := converter.ToOrder(payload)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	created, err := h.serv.Create(r.Context(), api.ClientID(r), o)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToCreateOrderResponse(*created))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.serv.List(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOrderListResponse(orders))
}
