package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvOverrides holds values read from the process environment
type EnvOverrides struct {
	APIBase string `env:"API_BASE"`
	LogFile string `env:"BIOTUTOR_LOG_FILE"`
	Theme   string `env:"BIOTUTOR_THEME"`
	Verbose bool   `env:"BIOTUTOR_VERBOSE" envDefault:"false"`
}

// Settings is the effective configuration, resolved once at startup and
// read-only afterwards.
type Settings struct {
	APIBase         string
	Theme           string
	LogFile         string
	Verbose         bool
	CopyToClipboard bool
	Markdown        MarkdownConfig
}

// LoadDotEnv loads variables from .env files into the environment.
// Missing files are ignored; existing variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadEnv parses the environment overrides
func LoadEnv() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return o, fmt.Errorf("failed to parse environment: %w", err)
	}
	return o, nil
}

// loadEnvFrom parses overrides from an explicit environment map
func loadEnvFrom(environ map[string]string) (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return o, fmt.Errorf("failed to parse environment: %w", err)
	}
	return o, nil
}

// Resolve builds Settings from the config file, the environment (after
// loading .env) and the command-line flag value, in increasing precedence.
func Resolve(flagAPIBase string, flagVerbose bool) (Settings, error) {
	if err := LoadDotEnv(); err != nil {
		return Settings{}, err
	}

	cfg, err := LoadConfig()
	if err != nil {
		return Settings{}, err
	}

	envOverrides, err := LoadEnv()
	if err != nil {
		return Settings{}, err
	}

	return Merge(cfg, envOverrides, flagAPIBase, flagVerbose)
}

// Merge combines the configuration layers. Precedence for the API base is
// flag > environment > config file > DefaultAPIBase.
func Merge(cfg Config, envOverrides EnvOverrides, flagAPIBase string, flagVerbose bool) (Settings, error) {
	raw := DefaultAPIBase
	for _, candidate := range []string{cfg.APIBase, envOverrides.APIBase, flagAPIBase} {
		if strings.TrimSpace(candidate) != "" {
			raw = candidate
		}
	}

	base, err := NormalizeAPIBase(raw)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		APIBase:         base,
		Theme:           cfg.TUITheme,
		LogFile:         cfg.LogFile,
		Verbose:         cfg.Verbose || envOverrides.Verbose || flagVerbose,
		CopyToClipboard: cfg.CopyToClipboard,
		Markdown:        cfg.Markdown,
	}
	if envOverrides.Theme != "" {
		s.Theme = envOverrides.Theme
	}
	if envOverrides.LogFile != "" {
		s.LogFile = envOverrides.LogFile
	}
	if s.LogFile == "" {
		if p, err := DefaultLogPath(); err == nil {
			s.LogFile = p
		}
	}

	return s, nil
}

// NormalizeAPIBase validates a backend base URL and strips trailing slashes
func NormalizeAPIBase(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid API base %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid API base %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid API base %q: missing host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
