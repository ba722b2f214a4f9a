package render

import (
	"os"

	"github.com/diogo/biotutor/internal/config"
)

// OptionsFromSettings builds render options from the resolved settings.
// GLAMOUR_STYLE takes precedence over the configured style.
func OptionsFromSettings(s config.Settings) Options {
	md := s.Markdown
	opts := DefaultOptions().WithEmoji(md.EnableEmoji)
	if md.Style != "" {
		opts = opts.WithStyle(md.Style)
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts = opts.WithStyle(style)
	}

	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks
	return opts
}

// OptionsFromSettingsWithWidth is OptionsFromSettings with a specific width.
func OptionsFromSettingsWithWidth(s config.Settings, width int) Options {
	return OptionsFromSettings(s).WithWidth(width)
}
