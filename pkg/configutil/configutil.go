package configutil

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/titanous/json5"
)

// localName turns "dir/config.json5" into "dir/config.local.json5".
func localName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// readLayer decodes one json5 file, found is false when it does not exist
// or is empty.
func readLayer[T any](path string) (layer T, found bool, err error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return layer, false, nil
	}
	if err != nil {
		return layer, false, err
	}
	if len(contents) == 0 {
		return layer, false, nil
	}
	err = json5.Unmarshal(contents, &layer)
	if err != nil {
		return layer, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return layer, true, nil
}

// ReadConfig decodes `name` and then `<name>.local.<ext>` next to it, values
// set in the local file win. os.ErrNotExist is returned when neither exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false
	for _, path := range []string{name, localName(name)} {
		layer, ok, err := readLayer[T](path)
		if err != nil {
			return out, err
		}
		if !ok {
			continue
		}
		if found {
			slog.Info("merging config with local overrides", "local", path)
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, fmt.Errorf("merge %s: %w", path, err)
		}
		found = true
	}
	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads `name` with ReadConfig, then applies environment variables
// under `envPrefix` on top and validates the result using `validate` struct tags.
//
// A missing configuration file is not an error, the environment alone may be
// enough to produce a valid configuration.
func Load[T any](name, envPrefix string) (T, error) {
	out, err := ReadConfig[T](name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return out, err
	}
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("configuration file not found, using environment only", "file", name)
	}

	err = envconfig.Process(envPrefix, &out)
	if err != nil {
		return out, fmt.Errorf("environment: %w", err)
	}

	err = validate.Struct(out)
	if err != nil {
		return out, fmt.Errorf("validate: %w", err)
	}
	return out, nil
}
