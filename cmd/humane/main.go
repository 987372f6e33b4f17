package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"humane-errors/internal/cli"
	"humane-errors/pkg/errx"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	debug   = false
)

// logLevel is raised to debug once flags are parsed.
var logLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)

func main() {
	logger, err := newConsoleLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	initCommands(logger)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errx.UserString(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "humane",
	Short: "Explain error chains in plain language",
	Long: `humane builds error chains from YAML descriptions and shows how they read:
- the layered report with suggestions
- every annotated error in collection order
- the registered error codes`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		for _, problem := range multierr.Errors(cli.ValidateEnv()) {
			cli.Warn(errx.UserString(problem))
		}
		enabled := debug || cli.LoadCLIConfig().Debug
		// Set debug mode globally so logStructuredError can check it
		cli.SetDebugMode(enabled)
		if enabled {
			logLevel.SetLevel(zap.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")
}

func initCommands(logger *zap.Logger) {
	rootCmd.AddCommand(cli.NewRenderCmd(logger))
	rootCmd.AddCommand(cli.NewContextsCmd(logger))
	rootCmd.AddCommand(cli.NewCodesCmd(logger))
}

// newConsoleLogger returns a human-friendly console logger with timestamps.
// The level starts at Error and is lowered to Debug when debug mode is on.
func newConsoleLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
