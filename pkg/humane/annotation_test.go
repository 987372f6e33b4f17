package humane_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"humane-errors/pkg/errx"
	"humane-errors/pkg/humane"
)

func TestAttach_RetainsOriginalErrorReference(t *testing.T) {
	t.Run("errx error", func(t *testing.T) {
		err := errx.CLI("Original error")
		annotated := humane.Attach(err, "This is a test error", "Make sure the test output was correct.")
		assert.Same(t, err, annotated)
	})

	t.Run("foreign error", func(t *testing.T) {
		err := errors.New("Original error")
		annotated := humane.Attach(err, "This is a test error")
		assert.Equal(t, err, annotated)
		assert.True(t, annotated == err, "Attach must return the same error value")
	})

	t.Run("keeps message and cause", func(t *testing.T) {
		cause := errors.New("cause")
		err := errx.WrapCLI("wrapped", cause)
		humane.Attach(err, "Failure", "Fix it")

		assert.Equal(t, "wrapped", err.Error())
		assert.Same(t, cause, errors.Unwrap(err))
	})
}

func TestLookup_RoundTrip(t *testing.T) {
	err := humane.Attach(errx.CLI("boom"), "F", "S1", "S2")

	a, ok := humane.Lookup(err)
	require.True(t, ok)
	assert.Equal(t, "F", a.FailureMode())
	assert.Equal(t, []string{"S1", "S2"}, a.Suggestions())

	loc := a.Location()
	assert.True(t, strings.HasSuffix(loc.File, "annotation_test.go"), "file = %q", loc.File)
	assert.Positive(t, loc.Line)
	assert.Contains(t, loc.Member, "TestLookup_RoundTrip")
}

func TestLookup_Unannotated(t *testing.T) {
	_, ok := humane.Lookup(errx.CLI("plain"))
	assert.False(t, ok)

	_, ok = humane.Lookup(errors.New("plain"))
	assert.False(t, ok)

	_, ok = humane.Lookup(nil)
	assert.False(t, ok)
}

func TestLookup_DoesNotSearchCauses(t *testing.T) {
	inner := humane.Attach(errx.CLI("inner"), "Inner failure")
	outer := errx.WrapCLI("outer", inner)

	_, ok := humane.Lookup(outer)
	assert.False(t, ok)
}

func TestAttach_LastWriteWins(t *testing.T) {
	err := errx.CLI("boom")
	humane.Attach(err, "first", "a")
	humane.Attach(err, "second", "b")

	a, ok := humane.Lookup(err)
	require.True(t, ok)
	assert.Equal(t, "second", a.FailureMode())
	assert.Equal(t, []string{"b"}, a.Suggestions())

	contexts := humane.Collect(err)
	require.Len(t, contexts, 1)
	assert.Equal(t, "second", contexts[0].FailureMode())
}

func TestAttach_NoSuggestions(t *testing.T) {
	err := humane.Attach(errx.CLI("boom"), "F")

	a, ok := humane.Lookup(err)
	require.True(t, ok)
	assert.NotNil(t, a.Suggestions())
	assert.Empty(t, a.Suggestions())
}

func TestAttach_SuggestionsAreCopied(t *testing.T) {
	suggestions := []string{"one", "two"}
	err := humane.Attach(errx.CLI("boom"), "F", suggestions...)
	suggestions[0] = "changed"

	a, _ := humane.Lookup(err)
	got := a.Suggestions()
	assert.Equal(t, []string{"one", "two"}, got)

	got[1] = "changed"
	assert.Equal(t, []string{"one", "two"}, a.Suggestions())
}

func TestAttach_ExplicitLocation(t *testing.T) {
	loc := humane.Location{Member: "Load", File: "/src/config.go", Line: 42}
	err := humane.AttachAt(errx.CLI("boom"), loc, "F")

	a, ok := humane.Lookup(err)
	require.True(t, ok)
	assert.Equal(t, loc, a.Location())
}

func TestAttach_NilError(t *testing.T) {
	var err error
	assert.Nil(t, humane.Attach(err, "F"))

	var typed *errx.Error
	assert.Nil(t, humane.Attach(typed, "F"))
}

func TestLookup_ClobberedKey(t *testing.T) {
	err := errx.CLI("boom")
	err.Data()[humane.DataKey] = "not an annotation"

	_, ok := humane.Lookup(err)
	assert.False(t, ok)

	humane.Attach(err, "F")
	a, ok := humane.Lookup(err)
	require.True(t, ok)
	assert.Equal(t, "F", a.FailureMode())
}

func TestAttach_ForeignErrorsAreKeyedByIdentity(t *testing.T) {
	first := errors.New("same text")
	second := errors.New("same text")
	humane.Attach(first, "F")

	_, ok := humane.Lookup(first)
	assert.True(t, ok)
	_, ok = humane.Lookup(second)
	assert.False(t, ok)
}

type listError []string

func (l listError) Error() string { return strings.Join(l, "; ") }

type codeError struct{ code int }

func (c codeError) Error() string { return fmt.Sprintf("code %d", c.code) }

type emptyError struct{}

func (*emptyError) Error() string { return "empty" }

func TestAttach_ValueErrorsAreNotAnnotated(t *testing.T) {
	tests := []struct {
		name     string
		attached error
		other    error
	}{
		{name: "non-comparable", attached: listError{"a", "b"}, other: listError{"a", "b"}},
		{name: "errno", attached: syscall.Errno(2), other: syscall.ENOENT},
		{name: "struct value", attached: codeError{1}, other: codeError{1}},
		{name: "pointer to zero-size value", attached: &emptyError{}, other: &emptyError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var annotated error
			assert.NotPanics(t, func() { annotated = humane.Attach(tt.attached, "Config file missing") })
			assert.Equal(t, tt.attached, annotated)

			_, ok := humane.Lookup(tt.other)
			assert.False(t, ok, "an equal value must not inherit the annotation")
			_, ok = humane.Lookup(tt.attached)
			assert.False(t, ok)
		})
	}
}

func TestContexts_UnrelatedErrnoStaysPlain(t *testing.T) {
	humane.Attach(syscall.ENOENT, "Config file missing", "Create the file")

	later := fmt.Errorf("open cache: %w", syscall.ENOENT)
	assert.Empty(t, humane.Collect(later))
	assert.Equal(t, fmt.Sprintf("%+v", later), humane.String(later))
}

func TestAttach_ConcurrentDistinctErrors(t *testing.T) {
	const n = 32
	errs := make([]error, n)
	for i := range errs {
		if i%2 == 0 {
			errs[i] = errx.CLI(fmt.Sprintf("errx %d", i))
		} else {
			errs[i] = fmt.Errorf("foreign %d", i)
		}
	}

	var wg sync.WaitGroup
	for i, err := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			humane.Attach(err, fmt.Sprintf("failure %d", i))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		a, ok := humane.Lookup(err)
		require.True(t, ok, "error %d lost its annotation", i)
		assert.Equal(t, fmt.Sprintf("failure %d", i), a.FailureMode())
	}
}
