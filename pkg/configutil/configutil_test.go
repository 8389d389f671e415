package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testSection struct {
	URL     string `json:"url" envconfig:"URL"`
	Retries int    `json:"retries"`
}

type testConfig struct {
	Name    string      `json:"name" validate:"required"`
	Section testSection `json:"section"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		name: "base",
		section: { url: "a", retries: 2 },
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ section: { url: "b" } }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "base", cfg.Name)
	require.Equal(t, "b", cfg.Section.URL)
	require.Equal(t, 2, cfg.Section.Retries)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ name: "base", section: { url: "file" } }`)
	t.Setenv("CFGTEST_SECTION_URL", "env")

	cfg, err := Load[testConfig](filepath.Join(dir, "config.json5"), "CFGTEST")
	require.NoError(t, err)
	require.Equal(t, "env", cfg.Section.URL)
}

func TestLoadValidation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ section: { url: "file" } }`)

	_, err := Load[testConfig](filepath.Join(dir, "config.json5"), "CFGTEST")
	require.Error(t, err)
}
