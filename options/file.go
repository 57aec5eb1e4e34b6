package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadLayerFile reads one option layer from a TOML, YAML, or JSON file.
// The format is determined by the file extension, falling back to
// content detection for unknown extensions. A missing file is reported
// as ErrLayerNotFound.
func LoadLayerFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLayerNotFound, path)
		}
		return nil, fmt.Errorf("failed to read layer file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	values := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse TOML layer file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&values); err != nil {
			return nil, fmt.Errorf("failed to parse JSON layer file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("failed to parse YAML layer file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unable to determine layer format for file '%s'", path)
	}

	return values, nil
}

// AddLayerFile reads a layer from path and registers it under name,
// recomputing the effective mapping. See LoadLayerFile for the supported
// formats.
func (l *Layered) AddLayerFile(name, path string) error {
	values, err := LoadLayerFile(path)
	if err != nil {
		return err
	}
	return l.AddLayer(name, values)
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML: YAML accepts almost any plain text
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
