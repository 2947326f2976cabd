package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/theme"
)

// errorColor is fixed across modes; the palettes carry no red.
const errorColor = "#ef4444"

// ToastStyles holds one lipgloss style per severity.
type ToastStyles map[domain.Severity]lipgloss.Style

// NewToastStyles builds bordered toast styles from a palette: errors are red,
// successes use --green and everything else --neon.
func NewToastStyles(p theme.Palette) ToastStyles {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	colour := func(name string) lipgloss.Color {
		v, _ := p.Lookup(name)
		return lipgloss.Color(v)
	}

	return ToastStyles{
		domain.SeverityError:   base.BorderForeground(lipgloss.Color(errorColor)).Foreground(lipgloss.Color(errorColor)),
		domain.SeveritySuccess: base.BorderForeground(colour("--green")).Foreground(colour("--green")),
		domain.SeverityInfo:    base.BorderForeground(colour("--neon")).Foreground(colour("--neon")),
	}
}

// Toaster renders notifications in the style of the store's current mode.
type Toaster struct {
	store  *theme.Store
	styles map[domain.ThemeMode]ToastStyles
}

// NewToaster prepares styles for every mode in palettes.
func NewToaster(store *theme.Store, palettes theme.Palettes) *Toaster {
	t := &Toaster{
		store:  store,
		styles: make(map[domain.ThemeMode]ToastStyles, len(palettes)),
	}
	for mode, p := range palettes {
		t.styles[mode] = NewToastStyles(p)
	}
	return t
}

// Render formats one notification as "<icon> [id] message" in a bordered box.
func (t *Toaster) Render(n domain.Notification) string {
	text := fmt.Sprintf("%s [%d] %s", n.Severity.Icon(), n.ID, n.Message)
	style, ok := t.styles[t.store.Get()][n.Severity]
	if !ok {
		return text
	}
	return style.Render(text)
}
