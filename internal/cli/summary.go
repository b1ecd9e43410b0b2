package cli

import (
	"fmt"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/merge"
	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

// cmdSummary prints the per-suite counts and totals of one report. It exits
// non-zero when the report records failures.
func cmdSummary(args []string) int {
	if wantsHelp(args) {
		printSummaryUsage()
		return 0
	}

	if len(args) != 1 {
		out.ErrorPrefix("summary: exactly one report file required")
		return errors.ExitConfigError
	}

	doc, err := report.ParseFile(args[0])
	if err != nil {
		return fail(err)
	}

	suites, err := doc.Suites()
	if err != nil {
		return fail(err)
	}

	if failures := printReportSummary(args[0], suites); failures > 0 {
		return errors.ExitRuntimeError
	}
	return 0
}

// printReportSummary prints one line per suite followed by the totals and
// returns the total failure count.
func printReportSummary(path string, suites []*report.Node) int {
	acc := &merge.Accumulator{}

	out.SummaryHeader(path)
	for _, s := range suites {
		name, _ := s.Attr("name")
		if name == "" {
			name = "(unnamed)"
		}
		t, _ := s.Float("time")
		tests, _ := s.Int("tests")
		failures, _ := s.Int("failures")
		acc.AddTotals(t, tests, failures)

		detail := fmt.Sprintf("%d tests, %d failures, %ss", tests, failures, merge.FormatTime(merge.RoundTime(t)))
		out.SummaryAction(name, failures == 0, detail, "")
	}

	out.Println("")
	out.SummaryItem("Suites", fmt.Sprintf("%d", len(suites)))
	out.SummaryItem("Time", merge.FormatTime(acc.Time)+"s")

	if acc.Failures == 0 {
		out.FinalSuccess("All %d tests passed.", acc.Tests)
	} else {
		out.FinalFailure("%d of %d tests failed.", acc.Failures, acc.Tests)
	}
	return acc.Failures
}

func printSummaryUsage() {
	out.HelpTitle("junitmerge summary - print the totals of a JUnit XML report")
	out.HelpSection("Usage:")
	out.HelpUsage("junitmerge summary <file>")
	out.HelpSection("Description:")
	out.Println("  Lists every <testsuite> in the report with its tests, failures and time,")
	out.Println("  then the totals. Exits with status 1 when any suite has failures.")
	out.HelpSection("Examples:")
	out.HelpExample("junitmerge summary merged-test-results.xml", "Summarize a merged report")
	out.Println("")
}
