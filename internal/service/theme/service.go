package theme

import (
	"context"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/model"
	"velvet_bite/internal/repository"
	"velvet_bite/internal/service"
)

const codeThemeInvalid = "theme_invalid"

type serv struct {
	store repository.ClientStore
}

func NewThemeService(store repository.ClientStore) service.ThemeService {
	return &serv{store: store}
}

// Get Тема клиента. Светлая, если ничего не сохранено или хранилище недоступно
func (s *serv) Get(ctx context.Context, clientID string) model.Theme {
	res := s.store.Get(ctx, clientID, model.KeyTheme)
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("client", clientID).Msg("failed to read theme")
		return model.ThemeLight
	}
	t := model.Theme(res.OrElse(string(model.ThemeLight)))
	if !t.Valid() {
		return model.ThemeLight
	}
	return t
}

func (s *serv) Set(ctx context.Context, clientID string, theme model.Theme) error {
	if !theme.Valid() {
		return model.NewValidationError(codeThemeInvalid)
	}
	return s.store.Set(ctx, clientID, model.KeyTheme, string(theme))
}

// Toggle Переключает light <-> newyear
func (s *serv) Toggle(ctx context.Context, clientID string) (model.Theme, error) {
	next := s.Get(ctx, clientID).Toggle()
	if err := s.Set(ctx, clientID, next); err != nil {
		return s.Get(ctx, clientID), err
	}
	return next, nil
}
