package report

import (
	"github.com/AndreyAkinshin/junitmerge/internal/errors"
)

// ExtractSuites parses the file and returns its <testsuite> blocks.
// A single-suite report yields its root; a collection yields its direct
// <testsuite> children, which may be none. An unrecognized document yields
// a KindNoTestsFound error.
func ExtractSuites(path string) ([]*Node, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Suites()
}

// ExtractSummaries parses the file and returns its <testsuites> wrappers.
// A report rooted at <testsuites> yields its root; otherwise the direct
// <testsuites> children are returned.
func ExtractSummaries(path string) ([]*Node, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Summaries()
}

// HasSummaryWrapper reports whether the last file in paths that parses
// successfully is rooted at a <testsuites> wrapper.
//
// Each file overwrites the answer of the previous one, so earlier summary
// reports do not count once a later plain report is seen. This matches the
// behavior existing merged reports were produced with. Files with invalid
// markup are ignored here; a missing file aborts with KindNotFound.
func HasSummaryWrapper(paths []string) (bool, error) {
	has := false
	for _, path := range paths {
		doc, err := ParseFile(path)
		if err != nil {
			if errors.IsKind(err, errors.KindMalformedDocument) {
				continue
			}
			return false, err
		}
		has = doc.IsSummary()
	}
	return has, nil
}
