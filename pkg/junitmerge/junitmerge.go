package junitmerge

import (
	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/locate"
	"github.com/AndreyAkinshin/junitmerge/internal/merge"
	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

// ListXMLFiles returns the report files in dir, searching subdirectories
// when recursive is set. Hidden entries are skipped while recursing.
func ListXMLFiles(dir string, recursive bool) ([]string, error) {
	return locate.Locate(dir, recursive)
}

// MergeFiles merges the reports at paths, in order, into one document whose
// root is named after outputName with its first ".xml" removed.
func MergeFiles(paths []string, outputName string) (string, error) {
	return merge.Merge(paths, outputName)
}

// WriteMergedFile writes text to path, creating the parent directory when
// createDir is set.
func WriteMergedFile(path, text string, createDir bool) error {
	return report.Write(path, text, createDir)
}

// IsNoMatchingFiles reports whether err means a directory held no reports.
func IsNoMatchingFiles(err error) bool {
	return errors.IsKind(err, errors.KindNoMatchingFiles)
}

// IsMalformedDocument reports whether err means a report could not be parsed.
func IsMalformedDocument(err error) bool {
	return errors.IsKind(err, errors.KindMalformedDocument)
}

// IsMissingOutputDirectory reports whether err means the output directory did not exist.
func IsMissingOutputDirectory(err error) bool {
	return errors.IsKind(err, errors.KindMissingOutputDirectory)
}
