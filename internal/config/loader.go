package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var keyMap = map[string]string{
	"line_length":               "line_length",
	"target_version":            "target_versions",
	"target_versions":           "target_versions",
	"skip_string_normalization": "skip_string_normalization",
	"skip_string_normalisation": "skip_string_normalization",
	"preview":                   "preview",
	"pyi":                       "pyi",
	"rst_literal_blocks":        "rst_literal_blocks",
	"skip_errors":               "skip_errors",
	"formatter":                 "formatter",
	"exclude":                   "exclude",
	"excludes":                  "exclude",
}

// Load reads the configuration file name from fsys. The format follows the
// extension; pyproject.toml contributes its [tool.blackdocs] table only.
func Load(fsys fs.FS, name string) (Config, error) {
	var cfg Config

	name = strings.TrimSpace(name)
	if name == "" {
		return cfg, nil
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return cfg, err
	}

	var raw map[string]any

	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", name, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", name, decodeErr)
		}

		if path.Base(name) == pyprojectName {
			section, _, sectionErr := toolSection(raw)
			if sectionErr != nil {
				return cfg, fmt.Errorf("%s: %w", name, sectionErr)
			}

			raw = section
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", name, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}

	if raw == nil {
		return cfg, nil
	}

	if err := decodeConfigMap(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}

	return cfg, nil
}

func decodeConfigMap(raw map[string]any, dst *Config) error {
	for key, value := range raw {
		canonical, ok := keyMap[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := assign(dst, canonical, value); err != nil {
			return err
		}
	}

	return nil
}

func assign(dst *Config, key string, value any) error {
	switch key {
	case "line_length":
		n, err := expectInt(value, key)
		if err != nil {
			return err
		}

		if n <= 0 {
			return fmt.Errorf("%s must be positive, got %d", key, n)
		}

		dst.LineLength = &n
	case "target_versions":
		list, err := expectStringList(value, key)
		if err != nil {
			return err
		}

		dst.TargetVersions = &list
	case "formatter":
		str, err := expectString(value, key)
		if err != nil {
			return err
		}

		dst.Formatter = &str
	case "exclude":
		list, err := expectStringList(value, key)
		if err != nil {
			return err
		}

		dst.Exclude = &list
	default:
		b, err := expectBool(value, key)
		if err != nil {
			return err
		}

		*boolField(dst, key) = &b
	}

	return nil
}

func boolField(dst *Config, key string) **bool {
	switch key {
	case "skip_string_normalization":
		return &dst.SkipStringNormalization
	case "preview":
		return &dst.Preview
	case "pyi":
		return &dst.Pyi
	case "rst_literal_blocks":
		return &dst.RSTLiteralBlocks
	default:
		return &dst.SkipErrors
	}
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}

	if s, ok := value.(string); ok {
		return s, nil
	}

	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s: %q", field, v)
		}

		return b, nil
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}

		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}

		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

// expectStringList accepts a list or a single comma separated string.
func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return normalizeList(strings.Split(v, ",")), nil
	case []any:
		out := make([]string, 0, len(v))

		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}

			out = append(out, str)
		}

		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))

		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}

			out[key] = value
		}

		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}
