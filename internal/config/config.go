// Package config reads nm-dmenu settings from the environment. There is no
// configuration file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/scbrown/nm-dmenu/internal/menu"
	"github.com/scbrown/nm-dmenu/internal/nmcli"
)

const (
	// EnvMenuOpts holds extra menu arguments, separated by whitespace.
	EnvMenuOpts = "DMENU_DEFAULT_OPS"
	// EnvLogLevel selects the log level: debug, info, warn or error.
	EnvLogLevel = "NM_DMENU_LOG_LEVEL"
)

// DefaultLogLevel keeps stderr quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// Config holds nm-dmenu settings.
type Config struct {
	MenuProgram    string
	MenuArgs       []string
	NmcliProgram   string
	RescanTimeout  time.Duration
	ConnectTimeout time.Duration
	LogLevel       string
}

// Default returns the settings used when the environment sets nothing.
func Default() Config {
	return Config{
		MenuProgram:    menu.DefaultProgram,
		NmcliProgram:   nmcli.DefaultProgram,
		RescanTimeout:  nmcli.DefaultRescanTimeout,
		ConnectTimeout: nmcli.DefaultConnectTimeout,
		LogLevel:       DefaultLogLevel,
	}
}

// Load builds a Config from getenv. A nil getenv reads the process environment.
func Load(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	cfg.MenuArgs = strings.Fields(getenv(EnvMenuOpts))
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg
}
