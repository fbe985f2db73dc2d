package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/revclean/revclean/pkg/job"
)

// loadConfig overlays a config file onto cfg; the format follows the
// file extension. Absent keys keep their defaults.
func loadConfig(path string, cfg *job.Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch filepath.Ext(path) {
	case ".toml":
		return toml.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".json":
		return json.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config format %q (want .json, .toml, .yaml)", filepath.Ext(path))
	}
}
