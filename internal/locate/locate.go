// Package locate finds JUnit report files in a directory.
package locate

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

// Locator lists report files under a directory.
//
// Results keep the order in which the filesystem enumerates directory
// entries. That order is platform dependent; use WithSorted for
// reproducible output.
type Locator struct {
	exclude []string
	ignore  map[string]bool
	sorted  bool
}

// Option configures a Locator.
type Option func(*Locator)

// WithExclude drops files whose slash-separated path relative to the
// searched directory matches any of the doublestar patterns.
func WithExclude(patterns ...string) Option {
	return func(l *Locator) {
		l.exclude = append(l.exclude, patterns...)
	}
}

// WithIgnore skips the given files wherever they are found. It is used to keep
// a previous merge output out of the inputs of the next one.
func WithIgnore(paths ...string) Option {
	return func(l *Locator) {
		if l.ignore == nil {
			l.ignore = make(map[string]bool, len(paths))
		}
		for _, p := range paths {
			if abs, err := filepath.Abs(p); err == nil {
				l.ignore[abs] = true
			}
		}
	}
}

// WithSorted sorts the located paths lexically.
func WithSorted(sorted bool) Option {
	return func(l *Locator) {
		l.sorted = sorted
	}
}

// New creates a Locator with the given options.
func New(opts ...Option) *Locator {
	l := &Locator{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ValidatePatterns checks that every pattern is a valid doublestar pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Locate returns the report files under dir using default options.
func Locate(dir string, recursive bool) ([]string, error) {
	return New().Locate(dir, recursive)
}

// Locate returns the regular files under dir whose path ends in ".xml".
// Subdirectories are searched when recursive is set; hidden entries are
// skipped while recursing. An empty result is reported as a
// KindNoMatchingFiles error.
func (l *Locator) Locate(dir string, recursive bool) ([]string, error) {
	var names []string
	var err error
	if recursive {
		names, err = readDirRecursive(dir, "")
	} else {
		names, err = readDirNames(dir)
	}
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound(dir, err)
		}
		return nil, err
	}

	var files []string
	for _, name := range names {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if !strings.HasSuffix(path, report.Extension) {
			continue
		}
		if l.excluded(name) || l.ignored(path) {
			continue
		}
		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, errors.NoMatchingFiles(dir)
	}

	if l.sorted {
		sort.Strings(files)
	}
	return files, nil
}

func (l *Locator) excluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range l.exclude {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func (l *Locator) ignored(path string) bool {
	if len(l.ignore) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	return err == nil && l.ignore[abs]
}

// readDirNames returns the names of the entries of dir in enumeration order.
func readDirNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	// (*os.File).ReadDir does not sort, unlike os.ReadDir.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// readDirRecursive returns the paths, relative to root, of all non-directory
// entries below root/rel. Hidden entries are skipped.
func readDirRecursive(root, rel string) ([]string, error) {
	names, err := readDirNames(filepath.Join(root, rel))
	if err != nil {
		return nil, err
	}

	var result []string
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		relPath := filepath.Join(rel, name)

		info, err := os.Stat(filepath.Join(root, relPath))
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			sub, err := readDirRecursive(root, relPath)
			if err != nil {
				return nil, err
			}
			result = append(result, sub...)
			continue
		}
		result = append(result, relPath)
	}
	return result, nil
}
