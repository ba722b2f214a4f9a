// Package commands provides the biotutor command-line interface.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version info (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// errReported marks failures whose message was already printed
var errReported = errors.New("already reported")

type rootFlags struct {
	apiBase string
	verbose bool
	file    string
	raw     bool
	copy    bool
}

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "biotutor [question]",
		Short: "Terminal chat client for the Bio 1 Tutor",
		Long: `biotutor talks to the Bio 1 Tutor backend: ask questions about the
course material and upload notes for it to index.

The backend address comes from --api-base, then the API_BASE environment
variable (a .env file in the working directory is read first), then the
config file, then the built-in default.

Examples:
  biotutor                              Start interactive chat
  biotutor "What does the Krebs cycle produce?"
  biotutor -f question.md               Read the question from a file
  cat question.md | biotutor            Read the question from stdin
  biotutor upload lecture-07.pdf        Index a file
  biotutor config set api_base https://tutor.example.edu`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.resolve(flags.apiBase, flags.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			question, ok, err := readQuestion(deps, flags.file, args)
			if err != nil {
				return err
			}
			if ok {
				return runAsk(deps, question, askOptions{raw: flags.raw, copy: flags.copy})
			}
			if !deps.StdoutTTY() {
				return cmd.Help()
			}
			return runChat(deps)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.apiBase, "api-base", "", "Backend base URL (overrides API_BASE)")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Debug-level logging to the log file")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read the question from a file")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print only the answer text")
	cmd.Flags().BoolVarP(&flags.copy, "copy", "c", false, "Copy the answer to the clipboard")

	cmd.AddCommand(newChatCmd(deps))
	cmd.AddCommand(newAskCmd(deps))
	cmd.AddCommand(newUploadCmd(deps))
	cmd.AddCommand(newConfigCmd(deps))

	return cmd
}

// readQuestion picks the one-shot question from -f, stdin or the argument,
// in that order. ok is false when none was given.
func readQuestion(deps *Dependencies, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if deps.StdinPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), true, nil
		}
	}

	if len(args) > 0 {
		return args[0], true, nil
	}
	return "", false, nil
}

// run executes the command tree with args. The logger is flushed whether or
// not the command succeeds.
func run(deps *Dependencies, args []string) error {
	defer deps.close()

	if args == nil {
		args = []string{}
	}
	cmd := NewRootCmd(deps)
	cmd.SetArgs(args)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)
	return cmd.Execute()
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	if err := run(deps, os.Args[1:]); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error"))
		}
		os.Exit(1)
	}
}
