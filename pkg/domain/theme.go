package domain

import (
	"fmt"
	"strings"
)

// ThemeMode is the global two-valued display mode.
// The zero value is ThemeDark, so an unset mode is never observable.
type ThemeMode uint8

const (
	ThemeDark ThemeMode = iota
	ThemeNeon
)

// ThemeModes lists every mode in declaration order.
var ThemeModes = []ThemeMode{ThemeDark, ThemeNeon}

// String returns the wire name of the mode ("dark" or "neon").
func (m ThemeMode) String() string {
	switch m {
	case ThemeNeon:
		return "neon"
	default:
		return "dark"
	}
}

// Other returns the opposite mode.
func (m ThemeMode) Other() ThemeMode {
	if m == ThemeNeon {
		return ThemeDark
	}
	return ThemeNeon
}

// ParseThemeMode converts a wire name into a ThemeMode.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return ThemeDark, nil
	case "neon":
		return ThemeNeon, nil
	}
	return ThemeDark, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m ThemeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ThemeMode) UnmarshalText(text []byte) error {
	parsed, err := ParseThemeMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Valid reports whether m is one of the declared modes.
func (m ThemeMode) Valid() bool {
	return m == ThemeDark || m == ThemeNeon
}
