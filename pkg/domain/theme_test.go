package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/pkg/domain"
)

func TestThemeMode_ZeroValueIsDark(t *testing.T) {
	var m domain.ThemeMode
	assert.Equal(t, domain.ThemeDark, m)
	assert.Equal(t, "dark", m.String())
}

func TestThemeMode_Other(t *testing.T) {
	assert.Equal(t, domain.ThemeNeon, domain.ThemeDark.Other())
	assert.Equal(t, domain.ThemeDark, domain.ThemeNeon.Other())
}

func TestParseThemeMode(t *testing.T) {
	m, err := domain.ParseThemeMode("NEON")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeNeon, m)

	_, err = domain.ParseThemeMode("light")
	assert.ErrorIs(t, err, domain.ErrUnknownTheme)
}

func TestThemeMode_JSON(t *testing.T) {
	payload := struct {
		Theme domain.ThemeMode `json:"theme"`
	}{Theme: domain.ThemeNeon}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"neon"}`, string(data))

	err = json.Unmarshal([]byte(`{"theme":"sepia"}`), &payload)
	assert.ErrorIs(t, err, domain.ErrUnknownTheme)
}
