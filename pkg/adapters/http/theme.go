package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/var1d/folio/pkg/domain"
)

type themeBody struct {
	Mode domain.ThemeMode `json:"mode"`
}

// GetTheme handles GET /theme.
func (s *Server) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, themeBody{Mode: s.Theme.Get()})
}

// SetTheme handles PUT /theme.
func (s *Server) SetTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	mode, err := domain.ParseThemeMode(body.Mode)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.Theme.Set(mode)
	writeJSON(w, s.logger, http.StatusOK, themeBody{Mode: s.Theme.Get()})
}

// ToggleTheme handles POST /theme/toggle.
func (s *Server) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, themeBody{Mode: s.Theme.Toggle()})
}

// GetPalette handles GET /theme/palette.
func (s *Server) GetPalette(w http.ResponseWriter, r *http.Request) {
	mode := s.Theme.Get()
	if q := r.URL.Query().Get("mode"); q != "" {
		parsed, err := domain.ParseThemeMode(q)
		if err != nil {
			s.writeError(w, err)
			return
		}
		mode = parsed
	}
	writeJSON(w, s.logger, http.StatusOK, s.Palettes[mode])
}

// GetPaletteCSS handles GET /theme/css.
func (s *Server) GetPaletteCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(s.Palettes[s.Theme.Get()].CSS()))
}

// SubscribeThemeEvents handles GET /theme/events (SSE).
func (s *Server) SubscribeThemeEvents(w http.ResponseWriter, r *http.Request) {
	initial, _ := json.Marshal(themeBody{Mode: s.Theme.Get()})
	s.stream(w, r, ThemeTopic, fmt.Sprintf("event: theme\ndata: %s\n\n", initial), nil)
}
