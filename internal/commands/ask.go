package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/biotutor/internal/models"
	"github.com/diogo/biotutor/internal/render"
	"github.com/diogo/biotutor/internal/tui"
)

var (
	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorBot).
			Bold(true)

	botBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBot).
			Foreground(colorText).
			Padding(0, 1)

	sourcesLabelStyle = lipgloss.NewStyle().
				Foreground(colorSources).
				Bold(true)

	sourcesTextStyle = lipgloss.NewStyle().
				Foreground(colorTextDim)
)

type askOptions struct {
	raw  bool
	copy bool
}

func newAskCmd(deps *Dependencies) *cobra.Command {
	opts := askOptions{}
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(deps, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the answer text")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the answer to the clipboard")
	return cmd
}

// runAsk submits one question and prints the answer with its sources.
// On failure the chat fallback text goes to stdout and the details to stderr.
func runAsk(deps *Dependencies, question string, opts askOptions) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	gw, err := deps.gateway()
	if err != nil {
		return err
	}
	defer gw.Close()

	prog := startProgress(deps, !opts.raw, "Asking the tutor")
	answer, err := gw.SubmitQuery(question)
	if err != nil {
		prog.fail()
		deps.Logger.Warn("one-shot query failed", zap.Error(err))
		fmt.Fprintln(deps.Stdout, models.ServerErrorText)
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Query failed"))
		return errReported
	}
	prog.success("Answered")

	if opts.raw {
		fmt.Fprint(deps.Stdout, answer.Text)
		return nil
	}

	if opts.copy || deps.Settings.CopyToClipboard {
		copyAnswer(deps, answer.Text)
	}

	fmt.Fprintln(deps.Stdout, formatAnswer(deps, answer))
	return nil
}

// formatAnswer renders the answer bubble and the sources line
func formatAnswer(deps *Dependencies, answer *models.Answer) string {
	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	body := render.MarkdownOrPlain(answer.Text, render.OptionsFromSettingsWithWidth(deps.Settings, bubbleWidth-4))

	var sb strings.Builder
	sb.WriteString(botLabelStyle.Render("🧬 Tutor"))
	sb.WriteString("\n")
	sb.WriteString(botBubbleStyle.Width(bubbleWidth).Render(body))

	if len(answer.Sources) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sourcesLabelStyle.Render("Sources:"))
		sb.WriteString(" ")
		sb.WriteString(sourcesTextStyle.Render(strings.Join(answer.Sources, models.SourcesSeparator)))
	}
	return sb.String()
}

func copyAnswer(deps *Dependencies, text string) {
	if err := deps.Clipboard(text); err != nil {
		warn := lipgloss.NewStyle().Foreground(colorError).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(deps.Stderr, warn)
		return
	}
	fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
}

// formatErrorMessage prefixes the structured error description with context
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}
	head := lipgloss.NewStyle().Foreground(colorError).Bold(true).Render(context)
	return head + "\n" + tui.FormatError(err)
}
