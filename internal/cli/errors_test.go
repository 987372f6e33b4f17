package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"humane-errors/pkg/errx"
	"humane-errors/pkg/humane"
	"humane-errors/pkg/humanelog"
)

func withDebugMode(t *testing.T, enabled bool) {
	t.Helper()
	prev := IsDebugMode()
	SetDebugMode(enabled)
	t.Cleanup(func() { SetDebugMode(prev) })
}

func TestWrapWithSentinel(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name     string
		base     error
		wantCode string
	}{
		{name: "chain sentinel", base: ErrLoadChainFailed, wantCode: errx.CodeChain},
		{name: "render sentinel", base: ErrRenderFailed, wantCode: errx.CodeRender},
		{name: "cli sentinel", base: ErrChainFileRequired, wantCode: errx.CodeCLI},
		{name: "no sentinel", base: nil, wantCode: errx.CodeCLI},
		{name: "unregistered sentinel", base: errors.New("other"), wantCode: errx.CodeCLI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapWithSentinel(tt.base, cause, "msg")
			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.wantCode, e.Code())
			assert.ErrorIs(t, err, cause)
			if tt.base != nil {
				assert.ErrorIs(t, err, tt.base)
			}
		})
	}
}

func TestWrapWithSentinelAndContext(t *testing.T) {
	err := wrapWithSentinelAndContext(ErrInvalidChain, errors.New("bad"), "msg", map[string]any{"path": "chain.yaml"})
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, map[string]any{"path": "chain.yaml"}, e.Context())
}

func TestLogStructuredError(t *testing.T) {
	t.Run("silent without debug mode", func(t *testing.T) {
		withDebugMode(t, false)
		core, logs := observer.New(zap.DebugLevel)
		logStructuredError(zap.New(core), errors.New("boom"), "failed")
		assert.Zero(t, logs.Len())
	})

	t.Run("errx fields and annotations", func(t *testing.T) {
		withDebugMode(t, true)
		core, logs := observer.New(zap.DebugLevel)

		inner := humane.AttachAt(errors.New("no such file"), humane.Location{File: "/src/a.go", Line: 1}, "The file is missing", "Check the path")
		err := wrapWithSentinelAndContext(ErrLoadChainFailed, inner, "failed to load", map[string]any{"path": "chain.yaml"})
		logStructuredError(zap.New(core), err, "Failed to load chain description")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "Failed to load chain description", entry.Message)

		fields := entry.ContextMap()
		assert.Equal(t, errx.CodeChain, fields["error.code"])
		assert.Equal(t, errx.DescChain, fields["error.category"])
		assert.Equal(t, "chain.yaml", fields["error.context.path"])
		assert.Equal(t, "no such file", fields["error.cause"])
		assert.Contains(t, fields, humanelog.FieldKey)

		debugLines := strings.Split(fields["error.debug"].(string), "\n")
		require.Len(t, debugLines, 2)
		assert.Equal(t, `1: *errx.Error: failed to load | code=71000 | description="Chain description error" | message="failed to load" | context={path=chain.yaml}`, debugLines[0])
		assert.Equal(t, "2: *errors.errorString: no such file", debugLines[1])
	})

	t.Run("foreign error", func(t *testing.T) {
		withDebugMode(t, true)
		core, logs := observer.New(zap.DebugLevel)
		logStructuredError(zap.New(core), humane.Attach(errors.New("boom"), "It broke"), "failed")

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "boom", fields["error"])
		assert.Contains(t, fields, humanelog.FieldKey)
		assert.NotContains(t, fields, "error.debug")
	})

	t.Run("nil logger or error", func(t *testing.T) {
		withDebugMode(t, true)
		assert.NotPanics(t, func() {
			logStructuredError(nil, errors.New("boom"), "failed")
			logStructuredError(zap.NewNop(), nil, "failed")
		})
	})
}
