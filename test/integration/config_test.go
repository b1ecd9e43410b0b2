package integration

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/junitmerge/internal/config"
	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/project"
)

func TestConfigValidateInvalidFixtures(t *testing.T) {
	tests := []struct {
		fixture string
		want    string
	}{
		{"missing-output", "output"},
		{"duplicate-names", "duplicate report name"},
		{"dir-and-files", "cannot be combined with dir"},
		{"bad-exclude", "defaults.exclude"},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			configPath := filepath.Join(fixturesDir(), "invalid", tt.fixture, config.DefaultConfigFileName)

			_, _, err := config.LoadAndValidate(configPath)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.IsKind(err, errors.KindConfig) {
				t.Errorf("error kind = %v, want config", errors.KindOf(err))
			}
			if errors.GetExitCode(err) != errors.ExitConfigError {
				t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitConfigError)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestConfigFromSubdirectory(t *testing.T) {
	subdir := filepath.Join(fixturesDir(), "multi-report", "unit", "core")

	root, err := project.FindRootFrom(subdir)
	if err != nil {
		t.Fatalf("failed to find project root: %v", err)
	}

	want, _ := filepath.Abs(filepath.Join(fixturesDir(), "multi-report"))
	got, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("root = %q, want %q", got, want)
	}
}

func TestConfigRelativePathsResolveAgainstRoot(t *testing.T) {
	proj, err := project.LoadProjectFrom(filepath.Join(fixturesDir(), "multi-report"))
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}

	unit, err := proj.Report("unit")
	if err != nil {
		t.Fatal(err)
	}

	got := proj.Resolve(unit.Output)
	want := filepath.Join(proj.Root, "out", "unit.xml")
	if got != want {
		t.Errorf("Resolve(%q) = %q, want %q", unit.Output, got, want)
	}
	if abs := "/tmp/elsewhere.xml"; proj.Resolve(abs) != abs {
		t.Errorf("absolute paths should be kept as is, got %q", proj.Resolve(abs))
	}
}
