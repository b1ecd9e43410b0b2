package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/junitmerge/internal/batch"
	"github.com/AndreyAkinshin/junitmerge/internal/config"
	"github.com/AndreyAkinshin/junitmerge/internal/errors"
	"github.com/AndreyAkinshin/junitmerge/internal/merge"
	"github.com/AndreyAkinshin/junitmerge/internal/output"
	"github.com/AndreyAkinshin/junitmerge/internal/project"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// Help text alignment widths for consistent formatting.
const (
	helpCommandWidth = 18 // Width for commands like "completion <shell>"
	helpFlagWidth    = 20 // Width for flags like "-x, --exclude <glob>"
)

const defaultOutput = config.DefaultOutputFileName

// loadProject loads the configuration from path, or finds .junitmerge.yaml
// by walking up from the working directory when path is empty.
func loadProject(path string) (*project.Project, error) {
	if path != "" {
		return project.LoadProjectFile(path)
	}
	proj, err := project.LoadProject()
	if stderrors.Is(err, project.ErrNoProjectRoot) {
		return nil, errors.Config(err.Error())
	}
	return proj, err
}

type batchOptions struct {
	CommonOptions
	Config  string   `short:"c" long:"config" value-name:"FILE" description:"Configuration file"`
	Jobs    int      `short:"j" long:"jobs" value-name:"N" description:"Maximum concurrent merges"`
	Reports []string `short:"r" long:"report" value-name:"NAME" description:"Only run the named report"`
}

// cmdBatch runs every merge listed in the configuration file.
func cmdBatch(args []string) int {
	if wantsHelp(args) {
		printBatchUsage()
		return 0
	}

	var opts batchOptions
	rest, err := parseFlags(&opts, args)
	if err != nil {
		return fail(err)
	}
	if len(rest) > 0 {
		return fail(errors.Configf("batch: unexpected argument %q", rest[0]))
	}
	if err := applyCommonOptions(&opts.CommonOptions); err != nil {
		return fail(err)
	}
	if opts.Jobs < 0 {
		return fail(errors.Config("--jobs must be at least 1"))
	}

	proj, err := loadProject(opts.Config)
	if err != nil {
		return fail(err)
	}
	for _, w := range proj.Warnings {
		out.Warning("%s", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := batch.Run(ctx, proj, batch.Options{
		Parallelism: opts.Jobs,
		Only:        opts.Reports,
	})

	if !out.Quiet() {
		for _, r := range results {
			printJobResult(r)
		}
	}

	if runErr != nil {
		return fail(runErr)
	}
	if !out.Quiet() {
		out.Success("Merged %d reports.", len(results))
	}
	return 0
}

func printJobResult(r batch.JobResult) {
	switch {
	case r.Result != nil:
		detail := fmt.Sprintf("%d tests, %d failures, %ss -> %s",
			r.Result.Tests, r.Result.Failures, merge.FormatTime(r.Result.Time), r.Output)
		out.SummaryAction(r.Name, true, detail, "")
	case r.Err != nil:
		out.SummaryAction(r.Name, false, "failed", r.Err.Error())
	default:
		out.SummaryAction(r.Name, false, "not run", "")
	}
}

type configOptions struct {
	Config string `short:"c" long:"config" value-name:"FILE" description:"Configuration file"`
}

// cmdConfig handles configuration utilities.
func cmdConfig(args []string) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(args[1:])
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(args []string) int {
	if wantsHelp(args) {
		printConfigUsage()
		return 0
	}

	var opts configOptions
	rest, err := parseFlags(&opts, args)
	if err != nil {
		return fail(err)
	}
	if len(rest) > 0 {
		return fail(errors.Configf("config validate: unexpected argument %q", rest[0]))
	}

	proj, err := loadProject(opts.Config)
	if err != nil {
		return fail(err)
	}

	for _, w := range proj.Warnings {
		out.Warning("%s", w)
	}

	out.ValidationSuccess("Configuration is valid.")
	out.SummaryItem("File", proj.ConfigFile)
	out.SummaryItem("Parallelism", fmt.Sprintf("%d", proj.Config.Parallelism))
	if len(proj.Warnings) > 0 {
		out.SummaryItem("Warnings", fmt.Sprintf("%d", len(proj.Warnings)))
	}
	out.Println("")

	rows := make([][]string, 0, len(proj.Config.Reports))
	for _, r := range proj.Config.Reports {
		rows = append(rows, []string{r.Name, describeInputs(r), r.Output})
	}
	out.Table([]string{"Report", "Inputs", "Output"}, rows)
	return 0
}

func describeInputs(r config.ReportConfig) string {
	if len(r.Files) > 0 {
		return fmt.Sprintf("%d files", len(r.Files))
	}
	if r.IsRecursive() {
		return r.Dir + " (recursive)"
	}
	return r.Dir
}

// printBatchUsage prints the help text for the batch command.
func printBatchUsage() {
	w := output.New()

	w.HelpTitle("junitmerge batch - run configured merges")

	w.HelpSection("Usage:")
	w.HelpUsage("junitmerge batch [--config <file>] [--jobs <n>] [--report <name>...]")

	w.HelpSection("Description:")
	w.Println("  Reads .junitmerge.yaml from the current directory or the nearest parent")
	w.Println("  and runs each listed report. Relative paths resolve against the directory")
	w.Println("  holding the configuration file.")

	w.HelpSection("Options:")
	w.HelpFlag("-c, --config <file>", "Configuration file", helpFlagWidth)
	w.HelpFlag("-j, --jobs <n>", "Maximum concurrent merges (default: parallelism)", helpFlagWidth)
	w.HelpFlag("-r, --report <name>", "Only run the named report (repeatable)", helpFlagWidth)
	printCommonFlags(w)

	w.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	w.HelpExample("junitmerge batch", fmt.Sprintf("%s every configured report", titleCase.String("merge")))
	w.HelpExample("junitmerge batch -r unit -r e2e", fmt.Sprintf("%s two reports", titleCase.String("merge")))
	w.Println("")
}

// printConfigUsage prints the help text for the config command.
func printConfigUsage() {
	w := output.New()

	w.HelpTitle("junitmerge config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("junitmerge config <subcommand> [--config <file>]")

	w.HelpSection("Subcommands:")
	w.HelpCommand("validate", "Validate the batch configuration", helpCommandWidth)

	w.HelpSection("Options:")
	w.HelpFlag("-c, --config <file>", "Configuration file", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)

	w.HelpSection("Examples:")
	w.HelpExample("junitmerge config validate", "Validate .junitmerge.yaml")
	w.Println("")
}
