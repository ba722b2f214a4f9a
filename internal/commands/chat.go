package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/biotutor/internal/render"
	"github.com/diogo/biotutor/internal/tui"
)

func newChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat with the Bio 1 Tutor.

Enter sends, Ctrl+O uploads a file, Ctrl+S shows the sources of an answer,
Ctrl+Y copies the last answer. Type /exit or press Esc to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps)
		},
	}
}

func runChat(deps *Dependencies) error {
	gw, err := deps.gateway()
	if err != nil {
		return err
	}
	defer gw.Close()

	return deps.TUI.RunChat(gw, tui.ChatConfig{
		Logger:    deps.Logger,
		Render:    render.OptionsFromSettings(deps.Settings),
		Theme:     deps.Settings.Theme,
		Clipboard: deps.Clipboard,
	})
}
