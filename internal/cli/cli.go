// Package cli provides command-line interface functionality for junitmerge.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/jessevdk/go-flags"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/logging"
	"github.com/AndreyAkinshin/junitmerge/internal/output"
)

// Version is set at build time.
var Version = "dev"

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("junitmerge %s", Version)
		return 0
	case "merge":
		return cmdMerge(cmdArgs)
	case "batch":
		return cmdBatch(cmdArgs)
	case "config":
		return cmdConfig(cmdArgs)
	case "summary":
		return cmdSummary(cmdArgs)
	case "completion":
		return cmdCompletion(cmdArgs)
	default:
		// Without a command name the arguments belong to merge.
		return cmdMerge(args)
	}
}

// CommonOptions holds flags shared by every command that does work.
type CommonOptions struct {
	Quiet    bool   `short:"q" long:"quiet" description:"Minimal output (errors only)"`
	Verbose  bool   `short:"v" long:"verbose" description:"Log every merged file"`
	LogLevel string `long:"log-level" value-name:"LEVEL" description:"Log level (debug, info, warn, error)"`
}

// parseFlags parses args into opts and returns the positional arguments.
func parseFlags(opts interface{}, args []string) ([]string, error) {
	parser := flags.NewParser(opts, flags.PassDoubleDash)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		if ferr, ok := err.(*flags.Error); ok {
			return nil, errors.Config(ferr.Message)
		}
		return nil, errors.Config(err.Error())
	}
	return rest, nil
}

// applyCommonOptions validates shared flags and configures output and logging.
func applyCommonOptions(opts *CommonOptions) error {
	if opts.Quiet && opts.Verbose {
		return errors.Config("--quiet and --verbose are mutually exclusive")
	}

	out.SetQuiet(opts.Quiet)

	switch {
	case opts.LogLevel != "":
		if !logging.SetLevelByName(opts.LogLevel) {
			return errors.Configf("invalid --log-level value %q (valid: debug, info, warn, error)", opts.LogLevel)
		}
	case opts.Verbose:
		logging.Level.Set(slog.LevelDebug)
	case opts.Quiet:
		logging.Level.Set(slog.LevelError)
	default:
		logging.Level.Set(slog.LevelWarn)
	}
	return nil
}

// fail prints err and returns its exit code.
func fail(err error) int {
	out.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}

func printUsage() {
	w := output.New()

	w.HelpTitle("junitmerge - merge JUnit XML test reports")

	w.HelpSection("Usage:")
	w.HelpUsage("junitmerge [merge] [options] [<file>...]   Merge reports into one file")
	w.HelpUsage("junitmerge <command> [options]              Run a command")

	w.HelpSection("Commands:")
	w.HelpCommand("merge", "Merge report files (default command)", helpCommandWidth)
	w.HelpCommand("batch", "Run every merge listed in .junitmerge.yaml", helpCommandWidth)
	w.HelpCommand("config validate", "Validate .junitmerge.yaml", helpCommandWidth)
	w.HelpCommand("summary <file>", "Print the totals of a report", helpCommandWidth)
	w.HelpCommand("completion <shell>", "Generate shell completion (bash, zsh, fish)", helpCommandWidth)
	w.HelpCommand("version", "Show version information", helpCommandWidth)

	printMergeFlags(w)
	printCommonFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("junitmerge -d build/test-results", "Merge every report in a directory")
	w.HelpExample("junitmerge -r -d build -o out/all.xml -C", "Search recursively and create out/")
	w.HelpExample("junitmerge -o all.xml a.xml b.xml", "Merge explicit files")
	w.HelpExample("junitmerge batch --jobs 2", "Run configured merges two at a time")
	w.Println("")
}

func printMergeFlags(w *output.Writer) {
	w.HelpSection("Merge Options:")
	w.HelpFlag("-d, --dir <dir>", "Directory to search for .xml reports (default: .)", helpFlagWidth)
	w.HelpFlag("-r, --recursive", "Search subdirectories, skipping hidden entries", helpFlagWidth)
	w.HelpFlag("-o, --out <file>", fmt.Sprintf("Output file (default: %s)", defaultOutput), helpFlagWidth)
	w.HelpFlag("-C, --create-dir", "Create the output directory when missing", helpFlagWidth)
	w.HelpFlag("-x, --exclude <glob>", "Skip files matching a ** glob (repeatable)", helpFlagWidth)
	w.HelpFlag("--sort", "Merge files in lexical order", helpFlagWidth)
}

func printCommonFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", helpFlagWidth)
	w.HelpFlag("-v, --verbose", "Log every merged file", helpFlagWidth)
	w.HelpFlag("--log-level <level>", "Log level (debug, info, warn, error)", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)
	w.HelpFlag("--version", "Show version", helpFlagWidth)
}
