package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/diogo/biotutor/internal/models"
	"github.com/diogo/biotutor/internal/render"
)

const sourcesMarker = "[sources]"

// messagePane is the scrollable message list. It is the conversation
// store's subscriber: every append re-renders the list and then scrolls to
// the bottom. It is held by pointer so copies of Model share it.
type messagePane struct {
	viewport viewport.Model
	opts     render.Options
	messages []models.Message
	ready    bool

	// rendered bot bubbles by message index, valid for cacheWidth
	cache      map[int]string
	cacheWidth int
}

func newMessagePane(opts render.Options) *messagePane {
	return &messagePane{
		opts:  opts,
		cache: make(map[int]string),
	}
}

// refresh is the store subscriber
func (p *messagePane) refresh(messages []models.Message) {
	p.messages = messages
	if !p.ready {
		return
	}
	p.viewport.SetContent(p.content())
	p.viewport.GotoBottom()
}

func (p *messagePane) resize(width, height int) {
	if !p.ready {
		p.viewport = viewport.New(width, height)
		p.viewport.KeyMap = scrollKeys()
		p.ready = true
	} else {
		p.viewport.Width = width
		p.viewport.Height = height
	}
	p.refresh(p.messages)
}

func (p *messagePane) bubbleWidth() int {
	w := p.viewport.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// content renders every message in order
func (p *messagePane) content() string {
	width := p.bubbleWidth()
	if width != p.cacheWidth {
		p.cache = make(map[int]string)
		p.cacheWidth = width
	}

	var b strings.Builder
	for i, msg := range p.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		if msg.IsBot() {
			b.WriteString(p.renderBot(i, msg, width))
		} else {
			b.WriteString(userLabelStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(userBubbleStyle.Width(width).Render(msg.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (p *messagePane) renderBot(i int, msg models.Message, width int) string {
	if out, ok := p.cache[i]; ok {
		return out
	}

	body := render.MarkdownOrPlain(msg.Text, p.opts.WithWidth(width-2))
	out := botLabelStyle.Render("Tutor") + "\n" + botBubbleStyle.Width(width).Render(body)
	if msg.HasSources() {
		out += "\n" + sourcesMarkerStyle.Render(sourcesMarker)
	}

	p.cache[i] = out
	return out
}

// scrollKeys keeps letter keys free for the input box
func scrollKeys() viewport.KeyMap {
	km := viewport.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.Down = key.NewBinding(key.WithKeys("down"))
	km.Up = key.NewBinding(key.WithKeys("up"))
	km.HalfPageDown.SetEnabled(false)
	km.HalfPageUp.SetEnabled(false)
	return km
}
