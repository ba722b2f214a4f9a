package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const (
	defaultWidth = 80
	minWidth     = 20
)

// Options controls how an answer is turned into terminal output.
type Options struct {
	Width int

	// Style is one of the built-in style names or a path to a glamour JSON style.
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:            defaultWidth,
		Style:            ThemeDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns a copy wrapping at width columns. Widths below 20 are
// raised to 20.
func (o Options) WithWidth(width int) Options {
	if width < minWidth {
		width = minWidth
	}
	o.Width = width
	return o
}

// WithStyle returns a copy using style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithEmoji returns a copy with :shortcode: emoji conversion toggled.
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// key identifies a renderer configuration in the pool.
func (o Options) key() string {
	return fmt.Sprintf("%s|%d|%t%t%t%t",
		o.Style, o.Width, o.EnableEmoji, o.PreserveNewLines, o.TableWrap, o.InlineTableLinks)
}

func (o Options) termRendererOptions() []glamour.TermRendererOption {
	out := []glamour.TermRendererOption{
		glamour.WithWordWrap(o.Width),
		glamour.WithTableWrap(o.TableWrap),
		glamour.WithInlineTableLinks(o.InlineTableLinks),
	}

	if name, ok := standardStyle(o.Style); ok {
		out = append(out, glamour.WithStandardStyle(name))
	} else {
		out = append(out, glamour.WithStylePath(o.Style))
	}

	if o.EnableEmoji {
		out = append(out, glamour.WithEmoji())
	}
	if o.PreserveNewLines {
		out = append(out, glamour.WithPreservedNewLines())
	}
	return out
}
