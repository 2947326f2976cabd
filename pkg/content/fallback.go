package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Dataset is the offline content bundle.
type Dataset struct {
	Profile      Profile      `yaml:"profile"`
	Articles     []Article    `yaml:"articles"`
	Repositories []Repository `yaml:"repositories"`
	Projects     []Project    `yaml:"projects"`
}

// LoadDataset parses a content bundle.
func LoadDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse content dataset: %w", err)
	}
	if ds.Profile.Login == "" {
		return nil, fmt.Errorf("content dataset has no profile login")
	}
	return &ds, nil
}

// DefaultDataset returns the built-in bundle.
func DefaultDataset() *Dataset {
	ds, err := LoadDataset(fallbackYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded content dataset is invalid: %v", err))
	}
	return ds
}
