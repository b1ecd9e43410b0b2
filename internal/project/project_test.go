package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/junitmerge/internal/config"
	"github.com/AndreyAkinshin/junitmerge/internal/errors"
)

const minimalConfig = `
reports:
  - name: unit
    dir: results
    output: out/unit.xml
`

func writeProjectConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindRootFrom_Found(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, minimalConfig)

	found, err := FindRootFrom(root)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_FoundFromSubdir(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, minimalConfig)

	// Create nested subdirectory
	subdir := filepath.Join(root, "src", "module", "deep")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRootFrom(subdir)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_IgnoresDirectoryNamedLikeConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ConfigFileName), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := FindRootFrom(root)
	if err != ErrNoProjectRoot {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestFindRootFrom_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := FindRootFrom(dir)
	if err != ErrNoProjectRoot {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestLoadProjectFrom_Minimal(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, minimalConfig)

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if proj.Root != root {
		t.Errorf("Root = %q, want %q", proj.Root, root)
	}
	if proj.ConfigFile != filepath.Join(root, ConfigFileName) {
		t.Errorf("ConfigFile = %q", proj.ConfigFile)
	}
	if proj.Config.Parallelism != config.DefaultParallelism {
		t.Errorf("Parallelism = %d, want default", proj.Config.Parallelism)
	}
}

func TestLoadProjectFile_CustomName(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "ci.yaml")
	if err := os.WriteFile(path, []byte(minimalConfig), 0644); err != nil {
		t.Fatal(err)
	}

	proj, err := LoadProjectFile(path)
	if err != nil {
		t.Fatalf("LoadProjectFile() error = %v", err)
	}
	if proj.Root != root {
		t.Errorf("Root = %q, want %q", proj.Root, root)
	}
}

func TestLoadProjectFrom_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, "reports:\n  - name: unit\n    dir: results\n")

	_, err := LoadProjectFrom(root)
	if err == nil {
		t.Fatal("LoadProjectFrom() expected error")
	}
	if !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("error = %v", err)
	}
	if !errors.IsKind(err, errors.KindConfig) {
		t.Errorf("error kind = %v, want config", errors.KindOf(err))
	}
}

func TestLoadProjectFrom_Warnings(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, minimalConfig+"extra: true\n")

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if len(proj.Warnings) != 1 {
		t.Errorf("Warnings = %v, want 1", proj.Warnings)
	}
}

func TestProject_Resolve(t *testing.T) {
	root := t.TempDir()
	p := &Project{Root: root}

	if got, want := p.Resolve("out/unit.xml"), filepath.Join(root, "out", "unit.xml"); got != want {
		t.Errorf("Resolve(relative) = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "x.xml")
	if got := p.Resolve(abs); got != abs {
		t.Errorf("Resolve(absolute) = %q, want %q", got, abs)
	}
}

func TestProject_Report(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, minimalConfig)

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}

	r, err := proj.Report("unit")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if r.Output != "out/unit.xml" {
		t.Errorf("Output = %q", r.Output)
	}

	if _, err := proj.Report("missing"); err == nil {
		t.Error("Report(missing) expected error")
	}
}
