// Package render turns tutor answers into styled terminal output with glamour
// and holds the color themes of the chat screen.
package render

import "strings"

// Markdown renders content with a pooled renderer for opts.
func Markdown(content string, opts Options) (string, error) {
	tr, err := shared.acquire(opts)
	if err != nil {
		return "", err
	}
	defer shared.release(opts, tr)

	return tr.Render(content)
}

// MarkdownOrPlain renders content, falling back to the raw text if the
// renderer cannot be built or fails. Trailing newlines are trimmed.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
