package theme

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/var1d/folio/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed palettes.yaml
var defaultPalettesYAML []byte

// Var is one named presentation variable (a CSS custom property).
type Var struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Palette is the ordered variable table for one mode.
type Palette struct {
	Mode domain.ThemeMode `yaml:"mode" json:"mode"`
	Vars []Var            `yaml:"vars" json:"vars"`
}

// Lookup returns the value of a variable by name.
func (p Palette) Lookup(name string) (string, bool) {
	for _, v := range p.Vars {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// CSS renders the palette as a :root rule.
func (p Palette) CSS() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range p.Vars {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// Palettes maps each mode to its variable table.
type Palettes map[domain.ThemeMode]Palette

// paletteFile represents the structure of palettes.yaml.
type paletteFile struct {
	Modes []Palette `yaml:"modes"`
}

// LoadPalettes parses a palette document and checks that every mode is
// present and declares the same variable names.
func LoadPalettes(data []byte) (Palettes, error) {
	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse palettes: %w", err)
	}

	palettes := make(Palettes, len(file.Modes))
	for _, p := range file.Modes {
		if _, dup := palettes[p.Mode]; dup {
			return nil, fmt.Errorf("duplicate palette for mode %s", p.Mode)
		}
		if len(p.Vars) == 0 {
			return nil, fmt.Errorf("palette %s declares no variables", p.Mode)
		}
		palettes[p.Mode] = p
	}

	for _, mode := range domain.ThemeModes {
		if _, ok := palettes[mode]; !ok {
			return nil, fmt.Errorf("missing palette for mode %s", mode)
		}
	}

	ref := palettes[domain.ThemeDark]
	for _, mode := range domain.ThemeModes {
		p := palettes[mode]
		if len(p.Vars) != len(ref.Vars) {
			return nil, fmt.Errorf("palette %s has %d variables, want %d", mode, len(p.Vars), len(ref.Vars))
		}
		for _, v := range ref.Vars {
			if _, ok := p.Lookup(v.Name); !ok {
				return nil, fmt.Errorf("palette %s is missing %s", mode, v.Name)
			}
		}
	}

	return palettes, nil
}

// DefaultPalettes returns the built-in variable tables.
func DefaultPalettes() Palettes {
	palettes, err := LoadPalettes(defaultPalettesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded palettes are invalid: %v", err))
	}
	return palettes
}
