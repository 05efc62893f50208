package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const pyprojectName = "pyproject.toml"

var configFilenames = []string{
	".blackdocs.toml",
	".blackdocs.yaml",
	".blackdocs.yml",
	".blackdocs.json",
	pyprojectName,
}

// Find looks for a configuration file in start and then in each parent
// directory. A pyproject.toml only counts when it has a [tool.blackdocs]
// table. Paths use forward slashes; an empty result means no file was found.
func Find(fsys fs.FS, start string) (string, error) {
	dir := path.Clean(strings.TrimSpace(start))
	if dir == "" {
		dir = "."
	}

	for {
		for _, name := range configFilenames {
			candidate := path.Join(dir, name)
			if !fileExists(fsys, candidate) {
				continue
			}

			if name != pyprojectName {
				return candidate, nil
			}

			ok, err := hasToolSection(fsys, candidate)
			if err != nil {
				return "", err
			}

			if ok {
				return candidate, nil
			}
		}

		parent := path.Dir(dir)
		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}

func fileExists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

func hasToolSection(fsys fs.FS, name string) (bool, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}

	_, ok, err := toolSection(raw)

	return ok, err
}

// toolSection extracts [tool.blackdocs] from a decoded pyproject.toml.
func toolSection(raw map[string]any) (map[string]any, bool, error) {
	tool, ok := raw["tool"]
	if !ok {
		return nil, false, nil
	}

	tools, err := toStringKeyMap(tool)
	if err != nil {
		return nil, false, fmt.Errorf("tool: %w", err)
	}

	section, ok := tools["blackdocs"]
	if !ok {
		return nil, false, nil
	}

	sub, err := toStringKeyMap(section)
	if err != nil {
		return nil, false, fmt.Errorf("tool.blackdocs: %w", err)
	}

	return sub, true, nil
}
