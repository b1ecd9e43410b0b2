// Package merge combines JUnit report files into a single report.
package merge

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

// Mode selects where totals are read from for a whole merge.
type Mode int

const (
	// ModePlain sums the attributes of every <testsuite> block.
	ModePlain Mode = iota
	// ModeSummary sums the attributes of every <testsuites> wrapper.
	ModeSummary
)

func (m Mode) String() string {
	if m == ModeSummary {
		return "summary"
	}
	return "plain"
}

// Result describes a finished merge.
type Result struct {
	Document string   // Serialized merged report
	Name     string   // Value of the root name attribute
	Mode     Mode     // Accumulation mode used for the batch
	Time     float64  // Total time in seconds
	Tests    int      // Total test count
	Failures int      // Total failure count
	Merged   []string // Files that were processed
	Skipped  []string // Files skipped because they contain no tests
}

// Engine merges report files. An Engine runs one merge at a time;
// concurrent merges need separate engines.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Merge combines the report files at paths into one document named after outputName.
func Merge(paths []string, outputName string) (string, error) {
	res, err := New().Run(paths, outputName)
	if err != nil {
		return "", err
	}
	return res.Document, nil
}

// Run combines the report files at paths, in order, into one document.
//
// The accumulation mode is chosen once for the whole batch from the last
// readable file (see report.HasSummaryWrapper). Files that contain no tests
// are skipped; any other error aborts the merge.
func (e *Engine) Run(paths []string, outputName string) (*Result, error) {
	name := strings.Replace(outputName, report.Extension, "", 1)

	summary, err := report.HasSummaryWrapper(paths)
	if err != nil {
		e.logger.Error("failed to inspect reports", "error", err)
		return nil, err
	}

	res := &Result{Name: name, Mode: ModePlain}
	if summary {
		res.Mode = ModeSummary
	}

	acc := &Accumulator{}
	for _, path := range paths {
		err := e.mergeFile(acc, path, res.Mode)
		if errors.IsKind(err, errors.KindNoTestsFound) {
			e.logger.Debug("skipping report without tests", "path", path)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		if err != nil {
			e.logger.Error("failed to merge report", "path", path, "error", err)
			return nil, err
		}
		res.Merged = append(res.Merged, path)

		if acc.Empty() {
			// Nothing collected yet; later files may still contribute suites.
			e.logger.Debug("no test suites collected yet", "path", path)
		}
	}

	res.Time = acc.Time
	res.Tests = acc.Tests
	res.Failures = acc.Failures
	res.Document = compose(name, acc)

	e.logger.Info("merged reports",
		"name", name,
		"mode", res.Mode.String(),
		"files", len(res.Merged),
		"skipped", len(res.Skipped),
		"tests", res.Tests,
		"failures", res.Failures)

	return res, nil
}

// mergeFile adds one file to acc. Nothing is added when an error is returned.
func (e *Engine) mergeFile(acc *Accumulator, path string, mode Mode) error {
	doc, err := report.ParseFile(path)
	if err != nil {
		return err
	}

	suites, err := doc.Suites()
	if err != nil {
		return err
	}

	if mode == ModePlain {
		for _, s := range suites {
			acc.AppendSuite(s)
			e.addTotals(acc, s, path)
		}
		return nil
	}

	summaries, err := doc.Summaries()
	if err != nil {
		return err
	}
	for _, s := range summaries {
		e.addTotals(acc, s, path)
	}
	for _, s := range suites {
		acc.AppendSuite(s)
	}
	return nil
}

func (e *Engine) addTotals(acc *Accumulator, n *report.Node, path string) {
	t, ok := n.Float("time")
	if !ok {
		e.warnAttr(n, "time", path)
	}
	tests, ok := n.Int("tests")
	if !ok {
		e.warnAttr(n, "tests", path)
	}
	failures, ok := n.Int("failures")
	if !ok {
		e.warnAttr(n, "failures", path)
	}
	acc.AddTotals(t, tests, failures)
}

func (e *Engine) warnAttr(n *report.Node, attr, path string) {
	v, _ := n.Attr(attr)
	e.logger.Warn("ignoring non-numeric attribute",
		"path", path, "element", n.Name(), "attr", attr, "value", v)
}

// compose renders the merged document around the accumulated suite text.
func compose(name string, acc *Accumulator) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>` + "\n")
	b.WriteString(`<testsuites name="`)
	_ = xml.EscapeText(&b, []byte(name))
	fmt.Fprintf(&b, `" time="%s" tests="%d" failures="%d">`+"\n",
		FormatTime(acc.Time), acc.Tests, acc.Failures)
	b.WriteString(acc.Body())
	b.WriteString("</testsuites>\n")
	return b.String()
}

// FormatTime formats seconds with the shortest representation that round-trips.
func FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
