package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/biotutor/internal/config"
	"github.com/diogo/biotutor/internal/render"
)

func newConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration biotutor would use, after applying the config
file, the environment and flags.`,
		Args: cobra.NoArgs,
		// Settings are resolved inside the subcommands so a broken value can
		// still be inspected and fixed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			apiBase, _ := cmd.Flags().GetString("api-base")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return runConfigShow(deps, apiBase, verbose)
		},
	}
	cmd.AddCommand(newConfigSetCmd(deps))
	return cmd
}

func newConfigSetCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a value in the config file",
		Long:  configSetHelp(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(deps, args[0], args[1])
		},
	}
}

func runConfigShow(deps *Dependencies, flagAPIBase string, flagVerbose bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if err := deps.resolve(flagAPIBase, flagVerbose); err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Invalid configuration"))
		return errReported
	}
	s := deps.Settings

	rows := [][2]string{
		{"config_file", path},
		{"api_base", s.APIBase},
		{"tui_theme", orDefault(s.Theme, render.DefaultTUITheme)},
		{"markdown.style", s.Markdown.Style},
		{"log_file", s.LogFile},
		{"verbose", fmt.Sprint(s.Verbose)},
		{"copy_to_clipboard", fmt.Sprint(s.CopyToClipboard)},
	}
	for _, r := range rows {
		fmt.Fprintf(deps.Stdout, "%-18s %s\n", r[0]+":", r[1])
	}
	return nil
}

func runConfigSet(deps *Dependencies, key, value string) error {
	if strings.EqualFold(key, "tui_theme") {
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return fmt.Errorf("unknown theme %q (valid: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
		}
	}

	if strings.EqualFold(key, "markdown.style") {
		if err := checkMarkdownStyle(value); err != nil {
			return err
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := config.SetValue(&cfg, key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "✓ %s = %s\n", strings.ToLower(key), value)
	return nil
}

// checkMarkdownStyle accepts a built-in style name or an existing JSON style file.
func checkMarkdownStyle(value string) error {
	if render.IsBuiltinStyle(value) {
		return nil
	}
	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		return nil
	}
	return fmt.Errorf("unknown markdown style %q (valid: %s, or a path to a JSON style file)",
		value, strings.Join(render.ThemeNames(), ", "))
}

func configSetHelp() string {
	var sb strings.Builder
	sb.WriteString("Persist a value in the config file.\n\nKeys: ")
	sb.WriteString(strings.Join(config.SettableKeys(), ", "))
	sb.WriteString("\n\nmarkdown.style values:\n")
	for _, t := range render.AvailableThemes() {
		fmt.Fprintf(&sb, "  %-12s %s\n", t.Name, t.Description)
	}
	sb.WriteString("  <path>       a glamour JSON style file")
	return sb.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
