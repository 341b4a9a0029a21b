// Package configutil loads json5 configuration files. A sibling file with a
// ".local" infix (config.json5 -> config.local.json5) overrides fields of the
// base file, so machine-specific settings can stay out of version control.
package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func readInto[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json5.Unmarshal(contents, out)
}

// Load reads the config file at path, merged with its ".local" override
// if one exists. Returns os.ErrNotExist when neither file is present.
func Load[T any](path string) (T, error) {
	var out T

	foundBase, err := readInto(path, &out)
	if err != nil {
		return out, err
	}

	var override T
	foundLocal, err := readInto(localPath(path), &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Debug("merged config with local overrides", "local", localPath(path))
	}

	if !foundBase && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// FindAndLoad walks up the directory tree from the working directory until
// it finds (and loads) a config file with the given name.
func FindAndLoad[T any](name string) (T, error) {
	var zero T

	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := Load[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return zero, os.ErrNotExist
		}
		current = parent
	}
}
