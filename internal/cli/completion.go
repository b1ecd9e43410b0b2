package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/junitmerge/internal/output"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	// Parse arguments
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return 2
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			return 2
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return 2
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		return 2
	}

	cmdName := "junitmerge"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return 2
	}

	return 0
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := output.New()

	w.HelpTitle("junitmerge completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("junitmerge completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", helpFlagWidth)

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completion for command alias", helpFlagWidth)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidth)

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(junitmerge completion bash)\"")
	w.Println("  Zsh:   eval \"$(junitmerge completion zsh)\"")
	w.Println("  Fish:  junitmerge completion fish | source")
	w.Println("")
}

// commandDescriptions lists the built-in commands in help order.
var commandDescriptions = []struct {
	name        string
	description string
}{
	{"merge", "Merge report files"},
	{"batch", "Run configured merges"},
	{"config", "Configuration utilities"},
	{"summary", "Print the totals of a report"},
	{"completion", "Generate shell completion"},
	{"version", "Show version information"},
	{"help", "Show help"},
}

// builtinCommands returns the list of built-in CLI commands.
func builtinCommands() []string {
	names := make([]string, len(commandDescriptions))
	for i, c := range commandDescriptions {
		names[i] = c.name
	}
	return names
}

// mergeFlags returns the flags accepted by merge.
func mergeFlags() []string {
	return []string{
		"--dir", "--recursive", "--out", "--create-dir", "--exclude", "--sort",
		"--quiet", "--verbose", "--log-level", "--help",
	}
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	return fmt.Sprintf(`# junitmerge bash completion
# Add to ~/.bashrc: eval "$(junitmerge completion bash)"

%s() {
    local cur prev words cword
    _init_completion || return

    local commands="%s"
    local flags="%s"

    case "${prev}" in
        %s)
            COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
            COMPREPLY+=($(compgen -f -X '!*.xml' -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "validate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        --log-level)
            COMPREPLY=($(compgen -W "debug info warn error" -- "${cur}"))
            return
            ;;
        -d|--dir)
            COMPREPLY=($(compgen -d -- "${cur}"))
            return
            ;;
        -o|--out|-c|--config)
            COMPREPLY=($(compgen -f -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi

    COMPREPLY=($(compgen -f -X '!*.xml' -- "${cur}"))
}

complete -F %s %s
`, funcName, strings.Join(builtinCommands(), " "), strings.Join(mergeFlags(), " "), cmdName, funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var commands strings.Builder
	for _, c := range commandDescriptions {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.name, c.description)
	}

	return fmt.Sprintf(`#compdef %s
# junitmerge zsh completion
# Add to ~/.zshrc: eval "$(junitmerge completion zsh)"

%s() {
    local -a commands flags

    commands=(
%s    )

    flags=(
        '(-d --dir)'{-d,--dir}'[Directory to search]:directory:_files -/'
        '(-r --recursive)'{-r,--recursive}'[Search subdirectories]'
        '(-o --out)'{-o,--out}'[Output file]:file:_files'
        '(-C --create-dir)'{-C,--create-dir}'[Create the output directory]'
        '*'{-x,--exclude}'[Skip matching files]:glob:'
        '--sort[Merge files in lexical order]'
        '(-q --quiet)'{-q,--quiet}'[Minimal output]'
        '(-v --verbose)'{-v,--verbose}'[Log every merged file]'
        '--log-level=[Log level]:level:(debug info warn error)'
        '--help[Show help]'
    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
    fi

    case "${words[2]}" in
        config)
            _values 'config subcommand' validate
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        *)
            _arguments -s $flags[@] '*:report:_files -g "*.xml"'
            ;;
    esac
}

compdef %s %s
`, cmdName, funcName, commands.String(), funcName, cmdName)
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	sb.WriteString(`# junitmerge fish completion
# Add to config: junitmerge completion fish | source

`)

	for _, c := range commandDescriptions {
		sb.WriteString(fmt.Sprintf("complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.name, c.description))
	}

	sb.WriteString("\n# Merge flags\n")
	sb.WriteString(fmt.Sprintf("complete -c %s -s d -l dir -d 'Directory to search' -xa '(__fish_complete_directories)'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -s r -l recursive -d 'Search subdirectories'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -s o -l out -d 'Output file' -r\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -s C -l create-dir -d 'Create the output directory'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -s x -l exclude -d 'Skip matching files' -x\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -l sort -d 'Merge files in lexical order'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -s q -l quiet -d 'Minimal output'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -s v -l verbose -d 'Log every merged file'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -l log-level -d 'Log level' -xa 'debug info warn error'\n", cmdName))

	sb.WriteString("\n# Subcommand arguments\n")
	sb.WriteString(fmt.Sprintf("complete -c %s -n '__fish_seen_subcommand_from config' -a 'validate' -d 'Validate configuration'\n", cmdName))
	sb.WriteString(fmt.Sprintf("complete -c %s -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n", cmdName))

	return sb.String()
}
