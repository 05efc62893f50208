package config_test

import (
	"testing"

	"github.com/ezerfernandes/blackdocs/internal/config"
	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFS(t *testing.T, files map[string]string) *memoryfs.FS {
	t.Helper()

	fsys := memoryfs.New()

	require.NoError(t, fsys.MkdirAll("proj/docs/api", 0o755))

	for name, content := range files {
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
	}

	return fsys
}

func TestFind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files map[string]string
		start string
		want  string
	}{
		{
			name:  "none",
			files: map[string]string{"proj/README.md": "# x\n"},
			start: "proj/docs",
			want:  "",
		},
		{
			name:  "same directory",
			files: map[string]string{"proj/docs/.blackdocs.yml": "preview: true\n"},
			start: "proj/docs",
			want:  "proj/docs/.blackdocs.yml",
		},
		{
			name:  "parent directory",
			files: map[string]string{"proj/.blackdocs.json": "{}"},
			start: "proj/docs/api",
			want:  "proj/.blackdocs.json",
		},
		{
			name: "closest wins",
			files: map[string]string{
				"proj/.blackdocs.toml":      "",
				"proj/docs/.blackdocs.yaml": "",
			},
			start: "proj/docs/api",
			want:  "proj/docs/.blackdocs.yaml",
		},
		{
			name: "dedicated file before pyproject",
			files: map[string]string{
				"proj/pyproject.toml":  "[tool.blackdocs]\npreview = true\n",
				"proj/.blackdocs.toml": "",
			},
			start: "proj",
			want:  "proj/.blackdocs.toml",
		},
		{
			name: "pyproject without section",
			files: map[string]string{
				"proj/docs/pyproject.toml": "[tool.black]\nline-length = 100\n",
				"proj/pyproject.toml":      "[tool.blackdocs]\nline-length = 100\n",
			},
			start: "proj/docs",
			want:  "proj/pyproject.toml",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.Find(newFS(t, tt.files), tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindBrokenPyproject(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, map[string]string{"proj/pyproject.toml": "[tool\n"})

	_, err := config.Find(fsys, "proj")
	require.ErrorContains(t, err, "parse proj/pyproject.toml")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"proj/.blackdocs.toml": "line-length = 100\n" +
			"target-versions = [\"py38\", \"py39\"]\n" +
			"skip-string-normalization = true\n" +
			"formatter = \"python -m black\"\n",
		"proj/.blackdocs.yaml": "line_length: 100\n" +
			"target_version: py38, py39\n" +
			"skip_string_normalization: \"true\"\n" +
			"formatter: python -m black\n",
		"proj/.blackdocs.json": `{"line_length": 100, "target_versions": ["py38", "py39"],` +
			` "skip_string_normalization": true, "formatter": "python -m black"}`,
		"proj/pyproject.toml": "[tool.black]\nline-length = 79\n\n" +
			"[tool.blackdocs]\n" +
			"line_length = 100\n" +
			"target_versions = \"py38,py39\"\n" +
			"skip_string_normalization = \"true\"\n" +
			"formatter = \"python -m black\"\n",
	}

	fsys := newFS(t, files)

	for name := range files {
		name := name
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load(fsys, name)
			require.NoError(t, err)

			require.NotNil(t, cfg.LineLength)
			assert.Equal(t, 100, *cfg.LineLength)
			require.NotNil(t, cfg.TargetVersions)
			assert.Equal(t, []string{"py38", "py39"}, *cfg.TargetVersions)
			require.NotNil(t, cfg.SkipStringNormalization)
			assert.True(t, *cfg.SkipStringNormalization)
			require.NotNil(t, cfg.Formatter)
			assert.Equal(t, "python -m black", *cfg.Formatter)

			assert.Nil(t, cfg.Preview)
			assert.Nil(t, cfg.Exclude)
		})
	}
}

func TestLoadFlags(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, map[string]string{
		"proj/.blackdocs.yml": "preview: true\npyi: false\nrst-literal-blocks: true\nskip-errors: true\n" +
			"exclude:\n  - \"vendor/**\"\n  - \"*.txt\"\n",
	})

	cfg, err := config.Load(fsys, "proj/.blackdocs.yml")
	require.NoError(t, err)

	require.NotNil(t, cfg.Preview)
	assert.True(t, *cfg.Preview)
	require.NotNil(t, cfg.Pyi)
	assert.False(t, *cfg.Pyi)
	require.NotNil(t, cfg.RSTLiteralBlocks)
	assert.True(t, *cfg.RSTLiteralBlocks)
	require.NotNil(t, cfg.SkipErrors)
	assert.True(t, *cfg.SkipErrors)
	require.NotNil(t, cfg.Exclude)
	assert.Equal(t, []string{"vendor/**", "*.txt"}, *cfg.Exclude)
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	fsys := newFS(t, map[string]string{
		"proj/.blackdocs.yml": "",
		"proj/pyproject.toml": "[tool.black]\nline-length = 79\n",
	})

	for _, name := range []string{"", "proj/.blackdocs.yml", "proj/pyproject.toml"} {
		cfg, err := config.Load(fsys, name)
		require.NoError(t, err, name)
		assert.Equal(t, config.Config{}, cfg, name)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		err     string
	}{
		{name: "unknown key", file: "c.toml", content: "colour = true\n", err: "c.toml: unknown config key: colour"},
		{name: "bad bool", file: "c.yaml", content: "preview: maybe\n", err: "invalid boolean value for preview"},
		{name: "bad int", file: "c.json", content: `{"line_length": 8.5}`, err: "expected integer for line_length"},
		{name: "negative int", file: "c.json", content: `{"line_length": -1}`, err: "line_length must be positive"},
		{name: "bad list", file: "c.json", content: `{"exclude": [1]}`, err: "expected string for exclude"},
		{name: "null string", file: "c.yml", content: "formatter:\n", err: "formatter cannot be null"},
		{name: "syntax", file: "c.toml", content: "line_length = \n", err: "parse c.toml"},
		{name: "extension", file: "c.ini", content: "", err: "unsupported config extension: .ini"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := memoryfs.New()
			require.NoError(t, fsys.WriteFile(tt.file, []byte(tt.content), 0o644))

			_, err := config.Load(fsys, tt.file)
			require.ErrorContains(t, err, tt.err)
		})
	}

	_, err := config.Load(memoryfs.New(), "missing.toml")
	require.Error(t, err)
}
