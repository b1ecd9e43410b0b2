package project

import (
	"fmt"
	"path/filepath"

	"github.com/AndreyAkinshin/junitmerge/internal/config"
)

// Project is a loaded configuration together with the directory that
// relative report paths are resolved against.
type Project struct {
	Root       string
	ConfigFile string
	Config     *config.Config
	Warnings   []string
}

// LoadProject finds and loads the configuration from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads .junitmerge.yaml from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	return LoadProjectFile(filepath.Join(root, ConfigFileName))
}

// LoadProjectFile loads an explicit configuration file. Its directory
// becomes the project root.
func LoadProjectFile(path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cfg, warnings, err := config.LoadAndValidate(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Project{
		Root:       filepath.Dir(abs),
		ConfigFile: abs,
		Config:     cfg,
		Warnings:   warnings,
	}, nil
}

// Resolve returns path made absolute against the project root.
func (p *Project) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Root, path)
}

// Report returns the named report configuration.
func (p *Project) Report(name string) (config.ReportConfig, error) {
	for _, r := range p.Config.Reports {
		if r.Name == name {
			return r, nil
		}
	}
	return config.ReportConfig{}, fmt.Errorf("report %q not found", name)
}
