package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/biotutor/internal/api"
	"github.com/diogo/biotutor/internal/conversation"
	"github.com/diogo/biotutor/internal/logging"
	"github.com/diogo/biotutor/internal/models"
	"github.com/diogo/biotutor/internal/render"
)

const (
	headerHeight = 3 // header panel with border
	inputHeight  = 5 // input panel with border
	statusHeight = 1
	panelBorder  = 2
	minViewport  = 3
)

// Message types for the TUI
type (
	// answerMsg carries the outcome of one query. Each query resolves
	// independently, so replies are appended in the order they arrive.
	answerMsg struct {
		seq    uint64
		answer *models.Answer
		err    error
	}
	uploadMsg struct {
		name    string
		receipt *models.UploadReceipt
		err     error
	}
)

// notice is a blocking notification dismissed with Enter or Esc
type notice struct {
	text string
	ok   bool
}

// ChatConfig holds the optional dependencies of the chat model
type ChatConfig struct {
	Logger *zap.Logger
	Render render.Options
	// Theme names a TUI color theme; unknown names keep the current one.
	Theme string
	// StartDir is where the upload file picker opens.
	StartDir string
	// Clipboard writes text to the system clipboard. Defaults to atotto/clipboard.
	Clipboard func(string) error
}

// Model represents the chat TUI state
type Model struct {
	gateway api.GatewayInterface
	store   *conversation.Store
	pane    *messagePane
	logger  *zap.Logger

	copyText func(string) error
	startDir string

	textarea textarea.Model
	spinner  spinner.Model
	picker   filepicker.Model

	inFlight  int
	uploading int

	picking       bool
	notice        *notice
	sourcesOpen   bool
	sourcesCursor int
	flash         string

	ready  bool
	width  int
	height int
}

// NewChatModel creates the chat model with a fresh conversation
func NewChatModel(gateway api.GatewayInterface, cfg ChatConfig) Model {
	if cfg.Theme != "" && render.SetTUITheme(cfg.Theme) {
		UpdateTheme()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask a biology question..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	opts := cfg.Render
	if opts.Style == "" {
		opts = render.DefaultOptions()
	}
	copyText := cfg.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	startDir := cfg.StartDir
	if startDir == "" {
		startDir = "."
	}

	store := conversation.New()
	pane := newMessagePane(opts)
	pane.refresh(store.Messages())
	store.Subscribe(pane.refresh)

	return Model{
		gateway:  gateway,
		store:    store,
		pane:     pane,
		logger:   logging.OrNop(cfg.Logger),
		copyText: copyText,
		startDir: startDir,
		textarea: ta,
		spinner:  s,
	}
}

// Store exposes the conversation backing the view
func (m Model) Store() *conversation.Store {
	return m.store
}

// InFlight returns the number of queries awaiting a reply
func (m Model) InFlight() int {
	return m.inFlight
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.picking {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(m.pickerSize())
			return m, cmd
		}
		return m, nil

	case answerMsg:
		m.inFlight--
		m.applyAnswer(msg)
		return m, nil

	case uploadMsg:
		m.uploading--
		m.applyUpload(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch {
	case m.notice != nil:
		return m.updateNotice(msg)
	case m.picking:
		return m.updatePicker(msg)
	case m.sourcesOpen:
		return m.updateSources(msg)
	}
	return m.updateChat(msg)
}

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		m.flash = ""

		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}
			return m.send()

		case "ctrl+o":
			return m.openPicker()

		case "ctrl+s":
			return m.openSources(), nil

		case "ctrl+y":
			m.copyLastAnswer()
			return m, nil
		}

		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.store.SetPending(m.textarea.Value())
	}

	if m.ready {
		m.pane.viewport, cmd = m.pane.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// send moves the input into the conversation and submits it. The input is
// cleared at once; the reply is appended whenever it arrives.
func (m Model) send() (tea.Model, tea.Cmd) {
	m.store.SetPending(m.textarea.Value())
	query, ok := m.store.Send()
	if !ok {
		return m, nil
	}
	m.textarea.Reset()

	seq := m.store.NextRequestID()
	m.logger.Debug("query submitted", zap.Uint64("seq", seq), zap.Int("length", len(query)))

	ticking := m.busy()
	m.inFlight++
	if ticking {
		return m, m.submitQuery(seq, query)
	}
	return m, tea.Batch(m.submitQuery(seq, query), m.spinner.Tick)
}

// submitQuery creates a command that sends one query to the backend
func (m Model) submitQuery(seq uint64, query string) tea.Cmd {
	gateway := m.gateway
	return func() tea.Msg {
		answer, err := gateway.SubmitQuery(query)
		return answerMsg{seq: seq, answer: answer, err: err}
	}
}

func (m Model) applyAnswer(msg answerMsg) {
	if msg.err != nil || msg.answer == nil {
		m.logger.Warn("query failed",
			zap.Uint64("seq", msg.seq),
			zap.Error(msg.err),
		)
		m.store.AppendServerError()
		return
	}
	m.logger.Debug("answer received",
		zap.Uint64("seq", msg.seq),
		zap.Int("sources", len(msg.answer.Sources)),
	)
	m.store.AppendBotMessage(msg.answer.Text, msg.answer.Sources)
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.CurrentDirectory = m.startDir
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	m.picker = fp
	m.picking = true

	var sizeCmd tea.Cmd
	if m.ready {
		m.picker, sizeCmd = m.picker.Update(m.pickerSize())
	}
	return m, tea.Batch(m.picker.Init(), sizeCmd)
}

func (m Model) pickerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: m.height - headerHeight - statusHeight}
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.picking = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if selected, path := m.picker.DidSelectFile(msg); selected {
		m.picking = false
		return m.upload(path)
	}
	return m, cmd
}

func (m Model) upload(path string) (tea.Model, tea.Cmd) {
	m.logger.Debug("upload submitted", zap.String("file", filepath.Base(path)))

	ticking := m.busy()
	m.uploading++
	gateway := m.gateway
	submit := func() tea.Msg {
		receipt, err := gateway.SubmitFile(path)
		return uploadMsg{name: filepath.Base(path), receipt: receipt, err: err}
	}
	if ticking {
		return m, submit
	}
	return m, tea.Batch(submit, m.spinner.Tick)
}

func (m *Model) applyUpload(msg uploadMsg) {
	if msg.err != nil {
		m.logger.Warn("upload failed", zap.String("file", msg.name), zap.Error(msg.err))
		m.notice = &notice{text: models.UploadFailedText}
		return
	}
	m.notice = &notice{text: models.IndexedNotice(msg.name), ok: true}
}

func (m Model) updateNotice(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc", " ":
			m.notice = nil
		}
	}
	return m, nil
}

// openSources shows the most recent bot message that has sources
func (m Model) openSources() Model {
	idx := m.store.SourceIndexes()
	if len(idx) == 0 {
		m.flash = "No sources yet"
		return m
	}
	m.sourcesOpen = true
	m.sourcesCursor = len(idx) - 1
	return m
}

func (m Model) updateSources(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(m.store.SourceIndexes())
	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+s", "enter":
		m.sourcesOpen = false
	case "left", "h":
		m.sourcesCursor = (m.sourcesCursor - 1 + n) % n
	case "right", "l":
		m.sourcesCursor = (m.sourcesCursor + 1) % n
	}
	return m, nil
}

// selectedSources returns the message shown in the sources panel
func (m Model) selectedSources() (models.Message, int, int) {
	idx := m.store.SourceIndexes()
	if len(idx) == 0 || m.sourcesCursor < 0 || m.sourcesCursor >= len(idx) {
		return models.Message{}, 0, len(idx)
	}
	msg, _ := m.store.At(idx[m.sourcesCursor])
	return msg, m.sourcesCursor + 1, len(idx)
}

func (m *Model) copyLastAnswer() {
	last, ok := m.store.LastBotMessage()
	if !ok {
		return
	}
	if err := m.copyText(last.Text); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.flash = "Copy failed"
		return
	}
	m.flash = "Answer copied to clipboard"
}

func (m Model) busy() bool {
	return m.inFlight > 0 || m.uploading > 0
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	vpHeight := height - headerHeight - inputHeight - statusHeight - panelBorder
	if vpHeight < minViewport {
		vpHeight = minViewport
	}
	vpWidth := width - panelBorder - 2

	m.textarea.SetWidth(width - panelBorder - 2)
	m.pane.resize(vpWidth, vpHeight)
	m.ready = true
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.notice != nil {
		return m.renderNotice()
	}

	panelWidth := m.width - panelBorder
	sections := []string{m.renderHeader(panelWidth)}

	if m.picking {
		body := lipgloss.JoinVertical(lipgloss.Left,
			sourcesTitleStyle.Render("Upload a file"),
			m.picker.View(),
		)
		sections = append(sections, pickerStyle.Width(panelWidth).Render(body))
	} else {
		sections = append(sections, messagesAreaStyle.
			Width(panelWidth).
			Height(m.pane.viewport.Height).
			Render(m.pane.viewport.View()))

		if m.sourcesOpen {
			sections = append(sections, m.renderSourcesPanel(panelWidth))
		} else {
			sections = append(sections, inputPanelStyle.Width(panelWidth).Render(
				lipgloss.JoinVertical(lipgloss.Left,
					inputLabelStyle.Render("You"),
					m.textarea.View(),
				),
			))
		}
	}

	sections = append(sections, m.renderStatusBar(panelWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	content := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("🧬 Bio 1 Tutor"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.gateway.BaseURL()),
	)
	return headerStyle.Width(width).Render(content)
}

func (m Model) renderSourcesPanel(width int) string {
	msg, pos, total := m.selectedSources()
	title := sourcesTitleStyle.Render(fmt.Sprintf("Sources (%d/%d)", pos, total))
	nav := hintStyle.Render("  ←/→ cycle  •  Esc close")
	return sourcesPanelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title+nav,
			msg.SourcesText(),
		),
	)
}

func (m Model) renderNotice() string {
	text := noticeFailStyle.Render(m.notice.text)
	if m.notice.ok {
		text = noticeOkStyle.Render(m.notice.text)
	}
	box := noticeStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		text,
		"",
		hintStyle.Render("Press Enter to continue"),
	))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderStatusBar renders the activity indicator and shortcuts
func (m Model) renderStatusBar(width int) string {
	var left []string
	if m.inFlight > 0 {
		left = append(left, m.spinner.View()+statusDescStyle.Render(fmt.Sprintf(" %d in flight", m.inFlight)))
	}
	if m.uploading > 0 {
		left = append(left, statusDescStyle.Render("uploading..."))
	}
	if m.flash != "" {
		left = append(left, statusKeyStyle.Render(m.flash))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"^O", "Upload"},
		{"^S", "Sources"},
		{"^Y", "Copy"},
		{"Esc", "Quit"},
	}
	if m.picking {
		shortcuts = shortcuts[len(shortcuts)-1:]
		shortcuts[0].desc = "Cancel"
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, "  │  ")
	if len(left) > 0 {
		bar = strings.Join(left, "  ") + "    " + bar
	}
	return statusBarStyle.Width(width).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(gateway api.GatewayInterface, cfg ChatConfig) error {
	p := tea.NewProgram(
		NewChatModel(gateway, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
