package setting

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Default is one shipped default setting.
type Default struct {
	Key         string `yaml:"key"`
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

type defaultsFile struct {
	Settings []Default `yaml:"settings"`
}

// Defaults returns the shipped default settings.
func Defaults() ([]Default, error) {
	var f defaultsFile
	if err := yaml.Unmarshal(defaultsYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse shipped defaults: %w", err)
	}
	return f.Settings, nil
}
