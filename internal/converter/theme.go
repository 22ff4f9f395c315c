package converter

import (
	"velvet_bite/internal/api/dto/theme"
	"velvet_bite/internal/model"
)

func ToTheme(req theme.ThemeRequest) model.Theme {
	return model.Theme(req.Theme)
}

func ToThemeResponse(t model.Theme) theme.ThemeResponse {
	return theme.ThemeResponse{Theme: string(t)}
}
