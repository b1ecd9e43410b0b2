package merge

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

func writeReport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func suite(name string, tests, failures int, time string) string {
	return fmt.Sprintf(`<testsuite name="%s" tests="%d" failures="%d" time="%s"><testcase name="%s.case" classname="%s" time="%s"></testcase></testsuite>`,
		name, tests, failures, time, name, name, time)
}

func quietEngine() *Engine {
	return New(WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
}

func parseMerged(t *testing.T, text string) *report.Document {
	t.Helper()
	doc, err := report.Parse("merged.xml", []byte(text))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	require.Equal(t, report.SummaryTag, doc.Root.Name())
	return doc
}

func attr(t *testing.T, n *report.Node, name string) string {
	t.Helper()
	v, ok := n.Attr(name)
	require.True(t, ok, "missing attribute %q", name)
	return v
}

func TestMerge_SumsSingleSuiteFiles(t *testing.T) {
	dir := t.TempDir()
	times := []string{"0.1234567", "1.0000004", "2.5"}
	var paths []string
	for i, tm := range times {
		paths = append(paths, writeReport(t, dir, fmt.Sprintf("r%d.xml", i), suite(fmt.Sprintf("s%d", i), i+2, i, tm)))
	}

	res, err := quietEngine().Run(paths, "merged.xml")
	require.NoError(t, err)

	want := 0.0
	for _, v := range []float64{0.123457, 1.0, 2.5} {
		want += v
	}

	assert.Equal(t, ModePlain, res.Mode)
	assert.Equal(t, 2+3+4, res.Tests)
	assert.Equal(t, 0+1+2, res.Failures)
	assert.Equal(t, want, res.Time)
	assert.Equal(t, paths, res.Merged)
	assert.Empty(t, res.Skipped)

	doc := parseMerged(t, res.Document)
	assert.Equal(t, "9", attr(t, doc.Root, "tests"))
	assert.Equal(t, "3", attr(t, doc.Root, "failures"))
	assert.Equal(t, FormatTime(want), attr(t, doc.Root, "time"))

	suites := doc.Root.ChildrenNamed(report.SuiteTag)
	require.Len(t, suites, 3)
	for i, s := range suites {
		assert.Equal(t, fmt.Sprintf("s%d", i), attr(t, s, "name"), "suites keep input order")
	}
}

func TestMerge_SingleFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := suite("only", 5, 1, "1.234567")
	path := writeReport(t, dir, "only.xml", input)

	text, err := Merge([]string{path}, "combined.xml")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, `<?xml version="1.0"?>`+"\n"))

	doc := parseMerged(t, text)
	assert.Equal(t, "combined", attr(t, doc.Root, "name"))
	assert.Equal(t, "5", attr(t, doc.Root, "tests"))
	assert.Equal(t, "1", attr(t, doc.Root, "failures"))
	assert.Equal(t, "1.234567", attr(t, doc.Root, "time"))

	original, err := report.Parse("only.xml", []byte(input))
	require.NoError(t, err)

	suites := doc.Root.ChildrenNamed(report.SuiteTag)
	require.Len(t, suites, 1)
	assert.Equal(t, original.Root.String(), suites[0].String())
	assert.Contains(t, text, original.Root.String())
}

func TestMerge_SkipsFileWithoutTests(t *testing.T) {
	dir := t.TempDir()
	good := writeReport(t, dir, "good.xml", suite("good", 4, 2, "0.75"))
	empty := writeReport(t, dir, "empty.xml", "<?xml version=\"1.0\"?>\n<!-- no tests ran -->\n")

	res, err := quietEngine().Run([]string{good, empty}, "out.xml")
	require.NoError(t, err)

	assert.Equal(t, 4, res.Tests)
	assert.Equal(t, 2, res.Failures)
	assert.Equal(t, 0.75, res.Time)
	assert.Equal(t, []string{good}, res.Merged)
	assert.Equal(t, []string{empty}, res.Skipped)
}

func TestMerge_FirstFileWithoutTestsDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	emptyCollection := writeReport(t, dir, "a.xml", `<testsuites></testsuites>`)
	blank := writeReport(t, dir, "b.xml", "")
	good := writeReport(t, dir, "c.xml", suite("good", 1, 0, "0.1"))

	res, err := quietEngine().Run([]string{emptyCollection, blank, good}, "out.xml")
	require.NoError(t, err)

	// The empty collection parses, so it counts as merged; the blank file is skipped.
	assert.Equal(t, []string{emptyCollection, good}, res.Merged)
	assert.Equal(t, []string{blank}, res.Skipped)
	assert.Equal(t, 1, res.Tests)
}

func TestMerge_NothingToMerge(t *testing.T) {
	dir := t.TempDir()
	blank := writeReport(t, dir, "blank.xml", "")

	res, err := quietEngine().Run([]string{blank}, "out.xml")
	require.NoError(t, err)

	doc := parseMerged(t, res.Document)
	assert.Equal(t, "0", attr(t, doc.Root, "tests"))
	assert.Equal(t, "0", attr(t, doc.Root, "time"))
	assert.Empty(t, doc.Root.ChildrenNamed(report.SuiteTag))
}

func TestMerge_LastFileSelectsSummaryMode(t *testing.T) {
	dir := t.TempDir()
	plain := writeReport(t, dir, "a.xml", suite("plain", 10, 5, "3.0"))
	summary := writeReport(t, dir, "b.xml",
		`<testsuites name="x" tests="2" failures="1" time="0.5">`+suite("wrapped", 2, 1, "0.5")+`</testsuites>`)

	res, err := quietEngine().Run([]string{plain, summary}, "out.xml")
	require.NoError(t, err)

	// In summary mode only <testsuites> totals count, so the plain file adds none.
	assert.Equal(t, ModeSummary, res.Mode)
	assert.Equal(t, 2, res.Tests)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, 0.5, res.Time)

	doc := parseMerged(t, res.Document)
	suites := doc.Root.ChildrenNamed(report.SuiteTag)
	require.Len(t, suites, 2, "suite bodies of both files are kept")
	assert.Equal(t, "plain", attr(t, suites[0], "name"))
	assert.Equal(t, "wrapped", attr(t, suites[1], "name"))
}

func TestMerge_SummaryLastThenPlainUsesPlainMode(t *testing.T) {
	dir := t.TempDir()
	summary := writeReport(t, dir, "a.xml",
		`<testsuites tests="99" failures="9" time="9">`+suite("wrapped", 2, 1, "0.5")+`</testsuites>`)
	plain := writeReport(t, dir, "b.xml", suite("plain", 3, 0, "1"))

	res, err := quietEngine().Run([]string{summary, plain}, "out.xml")
	require.NoError(t, err)

	assert.Equal(t, ModePlain, res.Mode)
	assert.Equal(t, 5, res.Tests, "wrapper totals are ignored in plain mode")
	assert.Equal(t, 1, res.Failures)
}

func TestMerge_SummaryWrapperWithoutDirectSuites(t *testing.T) {
	dir := t.TempDir()
	nested := writeReport(t, dir, "a.xml",
		`<report><testsuites tests="4" failures="1" time="2">`+suite("inner", 4, 1, "2")+`</testsuites></report>`)
	summary := writeReport(t, dir, "b.xml",
		`<testsuites tests="1" failures="0" time="1">`+suite("outer", 1, 0, "1")+`</testsuites>`)

	res, err := quietEngine().Run([]string{nested, summary}, "out.xml")
	require.NoError(t, err)

	// The nested wrapper contributes its totals but none of its suite text.
	assert.Equal(t, ModeSummary, res.Mode)
	assert.Equal(t, 5, res.Tests)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, 3.0, res.Time)

	doc := parseMerged(t, res.Document)
	suites := doc.Root.ChildrenNamed(report.SuiteTag)
	require.Len(t, suites, 1)
	assert.Equal(t, "outer", attr(t, suites[0], "name"))
}

func TestMerge_MalformedDocumentIsFatal(t *testing.T) {
	dir := t.TempDir()
	good := writeReport(t, dir, "a.xml", suite("good", 1, 0, "1"))
	bad := writeReport(t, dir, "b.xml", `<testsuite><testcase></testsuite>`)

	var logs bytes.Buffer
	engine := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, err := engine.Run([]string{good, bad}, "out.xml")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMalformedDocument))
	assert.Contains(t, logs.String(), "failed to merge report", "fatal errors are logged before returning")
}

func TestMerge_MissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	good := writeReport(t, dir, "a.xml", suite("good", 1, 0, "1"))

	_, err := quietEngine().Run([]string{good, filepath.Join(dir, "gone.xml")}, "out.xml")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestMerge_NonNumericAttributesCountAsZero(t *testing.T) {
	dir := t.TempDir()
	odd := writeReport(t, dir, "a.xml", `<testsuite name="odd" tests="many" failures="1"></testsuite>`)

	var logs bytes.Buffer
	engine := New(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	res, err := engine.Run([]string{odd}, "out.xml")
	require.NoError(t, err)

	assert.Equal(t, 0, res.Tests)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, 0.0, res.Time)
	assert.Contains(t, logs.String(), "ignoring non-numeric attribute")
}

func TestMerge_NameHandling(t *testing.T) {
	dir := t.TempDir()
	path := writeReport(t, dir, "a.xml", suite("s", 1, 0, "1"))

	tests := []struct {
		output string
		want   string
	}{
		{"combined.xml", "combined"},
		{"combined", "combined"},
		{"a.xml.xml", "a.xml"},
		{`say "hi" & <bye>.xml`, `say "hi" & <bye>`},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			res, err := quietEngine().Run([]string{path}, tt.output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Name)

			doc := parseMerged(t, res.Document)
			assert.Equal(t, tt.want, attr(t, doc.Root, "name"))
		})
	}
}

func TestRoundTime(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.234567, 1.234567},
		{1.2345674, 1.234567},
		{1.2345676, 1.234568},
		{0, 0},
		{12, 12},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, RoundTime(tt.in))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0", FormatTime(0))
	assert.Equal(t, "1.5", FormatTime(1.5))
	assert.Equal(t, "1.234567", FormatTime(1.234567))
}
