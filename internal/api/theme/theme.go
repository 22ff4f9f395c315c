package theme

import (
	"net/http"

	"velvet_bite/internal/api"
	dto "velvet_bite/internal/api/dto/theme"
	"velvet_bite/internal/converter"
	"velvet_bite/internal/service"
	"velvet_bite/pkg/req"
	"velvet_bite/pkg/resp"
)

type HandlerDeps struct {
	Serv service.ThemeService
}

type Handler struct {
	serv service.ThemeService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t := h.serv.Get(r.Context(), api.ClientID(r))
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToThemeResponse(t))
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ThemeRequest](r.Body)
	if err != nil {
		api.InvalidJSON(w, err)
		return
	}

	t := converter.ToTheme(payload)
	if err := h.serv.Set(r.Context(), api.ClientID(r), t); err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToThemeResponse(t))
}

// Toggle переключает светлую и новогоднюю тему
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	t, err := h.serv.Toggle(r.Context(), api.ClientID(r))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToThemeResponse(t))
}
