package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/middleware"
	"velvet_bite/internal/model"
	"velvet_bite/pkg/resp"
)

// WriteError Ошибка сервиса в HTTP ответ {"error": code, "message": text}
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.WriteError(w, http.StatusBadRequest, verr.Code, verr.Code)
	case errors.Is(err, model.ErrNotFound):
		resp.WriteError(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, model.ErrSpinInFlight):
		resp.WriteError(w, http.StatusConflict, "spin_in_flight", err.Error())
	case errors.Is(err, model.ErrSpinUsed):
		resp.WriteError(w, http.StatusConflict, "spin_used", err.Error())
	case errors.Is(err, model.ErrModalClosed):
		resp.WriteError(w, http.StatusConflict, "modal_closed", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// клиент ушел, отвечать некому
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request cancelled")
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		resp.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

// ClientID ID клиента из контекста запроса
func ClientID(r *http.Request) string {
	id, ok := middleware.ClientIDFromContext(r.Context())
	if !ok {
		log.Warn().Str("path", r.URL.Path).Msg("request without client id")
	}
	return id
}

// InvalidJSON Ответ на нечитаемое тело запроса
func InvalidJSON(w http.ResponseWriter, err error) {
	log.Debug().Err(err).Msg("invalid json body")
	resp.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid_json")
}
