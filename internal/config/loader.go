package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return err
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return nil
}

func LoadAll(dir string) (*SkillsConfig, *MonstersConfig, *ScenariosConfig, error) {
	var sc SkillsConfig
	var mc MonstersConfig
	var bc ScenariosConfig
	if err := loadYAML(filepath.Join(dir, "skills.yaml"), &sc); err != nil {
		return nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "monsters.yaml"), &mc); err != nil {
		return nil, nil, nil, err
	}
	if err := loadYAML(filepath.Join(dir, "scenarios.yaml"), &bc); err != nil {
		return nil, nil, nil, err
	}
	return &sc, &mc, &bc, nil
}
