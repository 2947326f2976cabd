package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/var1d/folio/pkg/domain"
)

// glamourStyles maps each display mode to a glamour standard style.
var glamourStyles = map[domain.ThemeMode]string{
	domain.ThemeDark: "dark",
	domain.ThemeNeon: "dracula",
}

// NewRenderer returns a function that renders markdown using glamour, styled
// for the given display mode.
func NewRenderer(mode domain.ThemeMode) (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyles[mode]),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
