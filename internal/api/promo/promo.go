package promo

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/api"
	dto "velvet_bite/internal/api/dto/promo"
	"velvet_bite/internal/converter"
	"velvet_bite/internal/model"
	"velvet_bite/internal/service"
	"velvet_bite/pkg/resp"
)

type HandlerDeps struct {
	Serv service.PromoService
}

type Handler struct {
	serv service.PromoService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Modal открывает окно с колесом. ?force=1 показывает окно повторно
func (h *Handler) Modal(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "1"

	modal, opened, err := h.serv.OpenModal(r.Context(), api.ClientID(r), force)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToModalResponse(modal, opened))
}

// Spin крутит колесо и отвечает после остановки.
// Повторное нажатие во время спина ничего не меняет: 202 и текущее состояние
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	clientID := api.ClientID(r)

	out, err := h.serv.Spin(r.Context(), clientID)
	if errors.Is(err, model.ErrSpinInFlight) {
		state := h.serv.SpinState(r.Context(), clientID)
		resp.WriteJSONResponse(w, http.StatusAccepted, converter.ToStateResponse(state))
		return
	}
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*out))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	state := h.serv.SpinState(r.Context(), api.ClientID(r))
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(state))
}

// Close закрывает окно. Окно закрыто, даже если флаг не сохранился
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	err := h.serv.CloseModal(r.Context(), api.ClientID(r))
	if err != nil {
		log.Warn().Err(err).Msg("promo modal closed without persisting the flag")
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.CloseResponse{Closed: true, Persisted: err == nil})
}

// Badge плашка скидки для страницы ?path=
func (h *Handler) Badge(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	badge, show := h.serv.Badge(r.Context(), api.ClientID(r), path)
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBadgeResponse(badge, show))
}

func (h *Handler) OrderDiscount(w http.ResponseWriter, r *http.Request) {
	od := h.serv.OrderDiscount(r.Context(), api.ClientID(r))
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOrderDiscountResponse(od))
}

func (h *Handler) WheelSVG(w http.ResponseWriter, r *http.Request) {
	svg, err := h.serv.WheelSVG()
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(svg))
}
