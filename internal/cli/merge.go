package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/locate"
	"github.com/AndreyAkinshin/junitmerge/internal/merge"
	"github.com/AndreyAkinshin/junitmerge/internal/output"
	"github.com/AndreyAkinshin/junitmerge/internal/report"
)

type mergeOptions struct {
	CommonOptions
	Dir       string   `short:"d" long:"dir" value-name:"DIR" description:"Directory to search for reports"`
	Recursive bool     `short:"r" long:"recursive" description:"Search subdirectories"`
	Out       string   `short:"o" long:"out" value-name:"FILE" default:"merged-test-results.xml" description:"Output file"`
	CreateDir bool     `short:"C" long:"create-dir" description:"Create the output directory when missing"`
	Exclude   []string `short:"x" long:"exclude" value-name:"GLOB" description:"Skip matching files"`
	Sort      bool     `long:"sort" description:"Merge files in lexical order"`
}

// cmdMerge merges report files into a single report.
func cmdMerge(args []string) int {
	if wantsHelp(args) {
		printMergeUsage()
		return 0
	}

	var opts mergeOptions
	files, err := parseFlags(&opts, args)
	if err != nil {
		return fail(err)
	}
	if err := applyCommonOptions(&opts.CommonOptions); err != nil {
		return fail(err)
	}
	if err := locate.ValidatePatterns(opts.Exclude); err != nil {
		return fail(errors.Config(err.Error()))
	}
	if opts.Dir != "" && len(files) > 0 {
		return fail(errors.Config("--dir cannot be combined with input files"))
	}

	paths, err := mergeInputs(&opts, files)
	if err != nil {
		code := fail(err)
		if errors.IsKind(err, errors.KindNoMatchingFiles) && !opts.Recursive {
			out.Hint("hint: use --recursive to search subdirectories")
		}
		return code
	}

	res, err := merge.New().Run(paths, filepath.Base(opts.Out))
	if err != nil {
		return fail(err)
	}

	if err := report.Write(opts.Out, res.Document, opts.CreateDir); err != nil {
		return fail(err)
	}

	printMergeSummary(opts.Out, res)
	return 0
}

// mergeInputs returns the explicit files, or the reports found under --dir.
func mergeInputs(opts *mergeOptions, files []string) ([]string, error) {
	if len(files) > 0 {
		if len(opts.Exclude) > 0 {
			out.Warning("--exclude has no effect with explicit input files")
		}
		if opts.Sort {
			files = append([]string(nil), files...)
			sort.Strings(files)
		}
		return files, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	loc := locate.New(
		locate.WithExclude(opts.Exclude...),
		locate.WithIgnore(opts.Out),
		locate.WithSorted(opts.Sort),
	)
	return loc.Locate(dir, opts.Recursive)
}

func printMergeSummary(path string, res *merge.Result) {
	out.SummaryHeader(path)
	out.SummaryItem("Tests", fmt.Sprintf("%d", res.Tests))
	if res.Failures > 0 {
		out.SummaryFailed("Failures", fmt.Sprintf("%d", res.Failures))
	} else {
		out.SummaryPassed("Failures", "0")
	}
	out.SummaryItem("Time", merge.FormatTime(res.Time)+"s")
	out.SummaryItem("Files", fmt.Sprintf("%d merged, %d skipped", len(res.Merged), len(res.Skipped)))
	if res.Mode == merge.ModeSummary {
		out.SummaryItem("Totals", "read from <testsuites> wrappers")
	}
}

// printMergeUsage prints the help text for the merge command.
func printMergeUsage() {
	w := output.New()

	w.HelpTitle("junitmerge merge - merge JUnit XML reports into one file")

	w.HelpSection("Usage:")
	w.HelpUsage("junitmerge [merge] [options] [<file>...]")

	w.HelpSection("Description:")
	w.Println("  Without input files, every .xml file in --dir (default: the current")
	w.Println("  directory) is merged. The root <testsuites> element is named after the")
	w.Println("  output file and carries the summed tests, failures and time.")

	printMergeFlags(w)
	printCommonFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("junitmerge -d build/test-results -o merged.xml", "Merge a directory")
	w.HelpExample("junitmerge -r -x 'flaky/**' -d build", "Merge recursively, skipping flaky/")
	w.Println("")
}
