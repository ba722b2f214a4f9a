package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/biotutor/internal/api"
	"github.com/diogo/biotutor/internal/config"
	"github.com/diogo/biotutor/internal/logging"
	"github.com/diogo/biotutor/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(gateway api.GatewayInterface, cfg tui.ChatConfig) error
}

// GatewayFactory builds the backend client for a resolved base URL.
type GatewayFactory func(baseURL string, logger *zap.Logger) (api.GatewayInterface, error)

// LoggerFactory opens the diagnostic logger for the resolved settings.
type LoggerFactory func(path string, verbose bool) (*zap.Logger, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	NewGateway GatewayFactory
	NewLogger  LoggerFactory
	TUI        TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether a question is being piped in.
	StdinPiped func() bool
	// StdoutTTY reports whether stdout is an interactive terminal.
	StdoutTTY func() bool
	Clipboard func(string) error

	// Resolved before any command runs.
	Settings config.Settings
	Logger   *zap.Logger
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(gateway api.GatewayInterface, cfg tui.ChatConfig) error {
	return tui.RunChat(gateway, cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewGateway: func(baseURL string, logger *zap.Logger) (api.GatewayInterface, error) {
			return api.NewClient(baseURL, api.WithLogger(logger))
		},
		NewLogger:  logging.New,
		TUI:        &DefaultTUI{},
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		StdinPiped: stdinPiped,
		StdoutTTY:  isStdoutTTY,
		Clipboard:  clipboard.WriteAll,
	}
}

// resolve reads the settings once and opens the log file
func (d *Dependencies) resolve(flagAPIBase string, flagVerbose bool) error {
	s, err := config.Resolve(flagAPIBase, flagVerbose)
	if err != nil {
		return err
	}
	d.Settings = s

	newLogger := d.NewLogger
	if newLogger == nil {
		newLogger = logging.New
	}
	logger, err := newLogger(s.LogFile, s.Verbose)
	if err != nil {
		fmt.Fprintf(d.Stderr, "Warning: logging disabled: %v\n", err)
		logger = nil
	}
	d.Logger = logging.OrNop(logger)
	d.Logger.Debug("settings resolved",
		zap.String("api_base", s.APIBase),
		zap.String("theme", s.Theme),
	)
	return nil
}

func (d *Dependencies) gateway() (api.GatewayInterface, error) {
	d.Logger = logging.OrNop(d.Logger)
	gw, err := d.NewGateway(d.Settings.APIBase, d.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return gw, nil
}

// close flushes the logger
func (d *Dependencies) close() {
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
}

func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
