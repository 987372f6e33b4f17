package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"humane-errors/internal/chain"
)

// ColorMode controls whether report headings are coloured.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// ParseColorMode accepts auto, on and off in any case.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ColorAuto, ColorOn, ColorOff:
		return mode, nil
	default:
		return "", newWithSentinel(ErrInvalidColorMode, "invalid color mode "+strconv.Quote(s)+" (want auto, on or off)")
	}
}

const (
	defaultColorMode = ColorAuto
	defaultMaxDepth  = chain.DefaultMaxDepth
)

// CLIConfig holds settings read from the environment. Flags override them.
type CLIConfig struct {
	// Color is read from HUMANE_COLOR.
	Color ColorMode
	// Debug is read from HUMANE_DEBUG.
	Debug bool
	// MaxDepth bounds chain description nesting. Read from HUMANE_MAX_DEPTH.
	MaxDepth int
}

// LoadCLIConfig reads the CLI configuration from environment variables,
// falling back to defaults for unset or invalid values.
func LoadCLIConfig() CLIConfig {
	cfg, _ := readEnv()
	return cfg
}

// ValidateEnv reports every HUMANE_* variable that LoadCLIConfig would
// ignore. Each problem is an ErrInvalidConfig error; use multierr.Errors to
// split them.
func ValidateEnv() error {
	_, err := readEnv()
	return err
}

func readEnv() (CLIConfig, error) {
	cfg := CLIConfig{
		Color:    defaultColorMode,
		MaxDepth: defaultMaxDepth,
	}
	var errs error

	if v := os.Getenv("HUMANE_COLOR"); v != "" {
		if mode, err := ParseColorMode(v); err == nil {
			cfg.Color = mode
		} else {
			errs = multierr.Append(errs, invalidEnv("HUMANE_COLOR", v, "auto, on or off"))
		}
	}
	if v := os.Getenv("HUMANE_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		} else {
			errs = multierr.Append(errs, invalidEnv("HUMANE_DEBUG", v, "a boolean"))
		}
	}
	if v := os.Getenv("HUMANE_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxDepth = n
		} else {
			errs = multierr.Append(errs, invalidEnv("HUMANE_MAX_DEPTH", v, "a positive integer"))
		}
	}

	return cfg, errs
}

func invalidEnv(name, value, want string) error {
	msg := fmt.Sprintf("ignoring %s=%q (want %s)", name, value, want)
	return wrapWithSentinelAndContext(ErrInvalidConfig, nil, msg, map[string]any{"env": name})
}
