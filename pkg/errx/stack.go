package errx

import (
	"fmt"
	"runtime"
	"strings"
)

// Frame is a single call site in a captured stack.
type Frame struct {
	Function string
	File     string
	Line     int
}

// Stack is a slice of Frames from the most recent call outward.
type Stack []Frame

// maxStackDepth bounds capture on error paths.
const maxStackDepth = 32

// captureStack records the current stack. skip counts frames to drop above
// captureStack: 0 starts at the function calling captureStack.
func captureStack(skip int) Stack {
	pc := make([]uintptr, maxStackDepth)
	// +2 skips runtime.Callers and captureStack itself.
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}
	return out
}

// String renders one frame per line as "   at <function> in <file>:line <n>".
func (s Stack) String() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	for i, fr := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(fr.String())
	}
	return b.String()
}

func (f Frame) String() string {
	return fmt.Sprintf("   at %s in %s:line %d", f.Function, f.File, f.Line)
}
