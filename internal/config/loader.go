package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	dexFile      = "dex.yaml"
	rulesFile    = "rules.yaml"
	settingsFile = "settings.yaml"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

func loadEmbedded(name string, out any) error {
	b, err := embedded.ReadFile("data/" + name)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// load reads name from dir, falling back to the embedded copy when dir is
// empty or the file does not exist there.
func load(dir, name string, out any) error {
	if dir != "" {
		path := filepath.Join(dir, name)
		err := loadYAML(path, out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := loadEmbedded(name, out); err != nil {
		return fmt.Errorf("config embedded %s: %w", name, err)
	}
	return nil
}

// Defaults returns the tables compiled into the binary.
func Defaults() (*DexConfig, *RulesConfig, *Settings, error) {
	return LoadAll("")
}

func LoadAll(dir string) (*DexConfig, *RulesConfig, *Settings, error) {
	var dc DexConfig
	var rc RulesConfig
	var st Settings
	if err := load(dir, dexFile, &dc); err != nil {
		return nil, nil, nil, err
	}
	if err := load(dir, rulesFile, &rc); err != nil {
		return nil, nil, nil, err
	}
	if err := load(dir, settingsFile, &st); err != nil {
		return nil, nil, nil, err
	}
	if err := st.Validate(); err != nil {
		return nil, nil, nil, err
	}
	return &dc, &rc, &st, nil
}
