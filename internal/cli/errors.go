package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for every registered category
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with humane annotations
//   - Debug mode management for error output

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"humane-errors/pkg/errx"
	"humane-errors/pkg/humanelog"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

type errorSpec struct {
	code        string
	description string
}

// newSentinelError creates a sentinel error and registers it in errorSpecs in one step.
func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// errorSpecs maps sentinel errors to their error codes and descriptions.
// Must be declared before sentinel errors to ensure proper initialization order.
var errorSpecs = make(map[error]errorSpec)

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (code, description string) {
	spec := specFor(sentinel)
	return spec.code, spec.description
}

// newWithSentinel creates a new error in the sentinel's category.
func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, nil)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

// wrapWithSentinel wraps a cause error in the sentinel's category.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context,
// such as the chain file being processed.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	// CLI errors.
	ErrChainFileRequired = newSentinelError("chain file is required", errx.CodeCLI, errx.DescCLI)
	ErrInvalidColorMode  = newSentinelError("invalid color mode", errx.CodeCLI, errx.DescCLI)

	// Chain errors.
	ErrLoadChainFailed = newSentinelError("failed to load chain description", errx.CodeChain, errx.DescChain)
	ErrInvalidChain    = newSentinelError("chain description is invalid", errx.CodeChain, errx.DescChain)

	// Render errors.
	ErrRenderFailed      = newSentinelError("failed to render report", errx.CodeRender, errx.DescRender)
	ErrWriteOutputFailed = newSentinelError("failed to write output", errx.CodeRender, errx.DescRender)

	// Configuration errors.
	ErrInvalidConfig = newSentinelError("invalid configuration", errx.CodeConfig, errx.DescConfig)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeCLI, description: errx.DescCLI}
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug or HUMANE_DEBUG).
//
// Fields for an errx.Error:
//   - error.code: "71000"
//   - error.category: "Chain description error"
//   - error.context.path: "chain.yaml"
//   - error.debug: one line per error in the chain, see errx.DebugString
//   - error.humane: every annotation found in the chain
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	if !errx.IsError(err) {
		logger.Error(msg, humanelog.Fields(err)...)
		return
	}

	var errxErr *errx.Error
	errors.As(err, &errxErr)
	fields := []zap.Field{
		zap.String("error.code", errxErr.Code()),
		zap.String("error.category", errxErr.Description()),
		zap.String("error.message", errxErr.Message()),
		zap.Error(err),
	}

	for key, value := range errxErr.Context() {
		fields = append(fields, zap.Any("error.context."+key, value))
	}

	// Distinct field name to avoid a duplicate "error" field.
	if cause := errxErr.Cause(); cause != nil {
		fields = append(fields, zap.NamedError("error.cause", cause))
	}

	fields = append(fields,
		zap.String("error.debug", errx.DebugString(err)),
		humanelog.Contexts(err),
	)
	logger.Error(msg, fields...)
}
