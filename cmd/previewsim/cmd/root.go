// Package cmd implements the previewsim CLI commands.
//
// The command structure follows the usual Go CLI layout: a root command
// that dispatches to subcommands (simulate, config, version).
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(env *Env, args []string) error
}

// Env is what a command runs against.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    logr.Logger
}

var rootCmd = &Command{
	Name:  "previewsim",
	Short: "previewsim - replay gestures against the preview engine",
	Long: `previewsim replays a YAML gesture script against the image preview
engine on a simulated clock and prints the transform of the current item
for every frame that changed.

Use "previewsim <command> --help" for more information about a command.`,
	Usage: "previewsim [-v] <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var (
	commands    = make(map[string]*Command)
	commandList []*Command
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	commandList = append(commandList, cmd)
}

// Execute runs the CLI with the given arguments (without the program name).
// Each -v raises log verbosity by one; logs go to stderr.
func Execute(args []string, stdout, stderr io.Writer) error {
	verbosity := 0
	var filtered []string
	for _, arg := range args {
		switch {
		case len(filtered) == 0 && (arg == "-h" || arg == "--help" || arg == "help"):
			printHelp(stdout)
			return nil
		case len(filtered) == 0 && arg == "--version":
			return runVersion(&Env{Stdout: stdout}, nil)
		case strings.HasPrefix(arg, "-v") && strings.Trim(arg[1:], "v") == "":
			verbosity += len(arg) - 1
		default:
			filtered = append(filtered, arg)
		}
	}
	if len(filtered) == 0 {
		printHelp(stdout)
		return nil
	}

	env := &Env{Stdout: stdout, Stderr: stderr, Log: newLogger(stderr, verbosity)}

	name := filtered[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", name)
		printHelp(stderr)
		return fmt.Errorf("unknown command: %s", name)
	}

	cmdArgs := filtered[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}
	return cmd.Run(env, cmdArgs)
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity}).WithName("previewsim")
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, rootCmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range commandList {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v                   Raise log verbosity (repeat or use -vv)")
	fmt.Fprintln(w, "  --version            Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  previewsim simulate swipe.yaml          Replay a script")
	fmt.Fprintln(w, "  previewsim -v simulate swipe.yaml       Replay with engine logs")
	fmt.Fprintln(w, "  previewsim config .                     Print the effective tuning")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
