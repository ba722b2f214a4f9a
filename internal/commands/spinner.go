package commands

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorText    = lipgloss.Color("#c0caf5")
	colorTextDim = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorBot     = lipgloss.Color("#7aa2f7")
	colorSources = lipgloss.Color("#bb9af7")
)

// Frame colors cycle through a green-to-teal range
var spinnerColors = []lipgloss.Color{
	lipgloss.Color("#1dd1a1"),
	lipgloss.Color("#10ac84"),
	lipgloss.Color("#00d2d3"),
	lipgloss.Color("#48dbfb"),
	lipgloss.Color("#54a0ff"),
	lipgloss.Color("#48dbfb"),
	lipgloss.Color("#00d2d3"),
	lipgloss.Color("#10ac84"),
}

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// spinner draws a single-line progress indicator on w
type spinner struct {
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

func newSpinner(w io.Writer, message string) *spinner {
	return &spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.w, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.w, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

func (s *spinner) render() {
	i := s.frame % len(spinnerFrames)
	char := lipgloss.NewStyle().Foreground(spinnerColors[i]).Bold(true).Render(spinnerFrames[i])
	dots := [...]string{"", ".", "..", "..."}[(s.frame/4)%4]
	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message + dots)
	fmt.Fprintf(s.w, "\r\033[K%s %s", char, msg)
}

func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.w, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner without a message
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// progress runs a spinner only when the output is interactive
type progress struct {
	spin *spinner
}

func startProgress(deps *Dependencies, enabled bool, message string) *progress {
	if !enabled || !deps.StdoutTTY() {
		return &progress{}
	}
	s := newSpinner(deps.Stderr, message)
	s.start()
	return &progress{spin: s}
}

func (p *progress) success(message string) {
	if p.spin != nil {
		p.spin.stopWithSuccess(message)
	}
}

func (p *progress) fail() {
	if p.spin != nil {
		p.spin.stopWithError()
	}
}
