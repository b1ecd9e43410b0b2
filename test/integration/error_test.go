package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/junitmerge/internal/batch"
	"github.com/AndreyAkinshin/junitmerge/internal/config"
	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/project"
)

func TestProjectNotFoundError(t *testing.T) {
	_, err := project.LoadProjectFrom("/nonexistent/path")
	if err == nil {
		t.Error("expected error when loading from nonexistent path")
	}
}

func TestConfigFileMissingError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, config.DefaultConfigFileName)

	_, err := config.Load(configPath)
	if err == nil {
		t.Error("expected error when loading missing config file")
	}

	_, _, err = config.LoadAndValidate(configPath)
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestConfigInvalidYAMLError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, config.DefaultConfigFileName)
	if err := writeFile(configPath, "reports: [unclosed"); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, _, err := config.LoadAndValidate(configPath)
	if err == nil {
		t.Fatal("expected error when loading invalid YAML config")
	}
	if !containsAny(err.Error(), "yaml") {
		t.Errorf("error = %q, want to mention yaml", err.Error())
	}
}

func TestReportNotFoundError(t *testing.T) {
	proj, err := project.LoadProjectFrom(filepath.Join(fixturesDir(), "minimal"))
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}

	if _, err := proj.Report("nonexistent"); err == nil {
		t.Error("expected error for nonexistent report")
	}

	_, err = batch.Run(context.Background(), proj, batch.Options{Only: []string{"nonexistent"}})
	if !errors.IsKind(err, errors.KindConfig) {
		t.Errorf("batch error = %v, want config kind", err)
	}
}

func TestMalformedReportAbortsOnlyItsJob(t *testing.T) {
	root := copyFixture(t, "multi-report")
	if err := writeFile(filepath.Join(root, "e2e", "truncated.xml"), "<testsuite name=\"cut\"><testcase></testsuite>"); err != nil {
		t.Fatal(err)
	}

	proj, err := project.LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}

	results, err := batch.Run(context.Background(), proj, batch.Options{Only: []string{"e2e"}})
	if !errors.IsKind(err, errors.KindMalformedDocument) {
		t.Fatalf("error = %v, want malformed document", err)
	}
	if errors.GetExitCode(err) != errors.ExitRuntimeError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitRuntimeError)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("expected a failed e2e result, got %+v", results)
	}
	if _, statErr := os.Stat(filepath.Join(root, "out", "e2e.xml")); statErr == nil {
		t.Error("no output should be written for a failed merge")
	}
}

func TestMissingOutputDirectoryError(t *testing.T) {
	root := copyFixture(t, "minimal")
	cfg := "reports:\n  - name: all\n    dir: results\n    output: missing/merged.xml\n"
	if err := os.WriteFile(filepath.Join(root, config.DefaultConfigFileName), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	proj, err := project.LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}

	_, err = batch.Run(context.Background(), proj, batch.Options{})
	if !errors.IsKind(err, errors.KindMissingOutputDirectory) {
		t.Errorf("error = %v, want missing output directory", err)
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func containsAny(s string, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
