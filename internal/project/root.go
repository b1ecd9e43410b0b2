// Package project locates and loads a junitmerge batch configuration.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/junitmerge/internal/config"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = config.DefaultConfigFileName

// ErrNoProjectRoot is returned when .junitmerge.yaml is not found.
var ErrNoProjectRoot = errors.New(".junitmerge.yaml not found in the current directory or any parent up to the root")

// FindRoot walks up from the current working directory until it finds .junitmerge.yaml.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds .junitmerge.yaml.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
