package report

import (
	"fmt"
	"os"
)

// CompileError is a compile-time diagnostic tied to a source file and,
// usually, a position within it. The parser, the semantic analyzer and the
// IR emitter raise one of these via Raise; the import resolver and the JIT
// driver return plain errors instead.
type CompileError struct {
	// Stage names which pipeline stage produced the error, e.g. "parse",
	// "import", "semantic", "codegen", "jit".
	Stage string

	// FilePath is the source file the error applies to, if any.
	FilePath string

	// Pos is the offending position, or nil if the error has no specific
	// position (e.g. a missing file).
	Pos *TextPosition

	Message string
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise constructs and panics with a *CompileError. It must only be called
// from code that runs under a deferred CatchErrors in the same stage.
func Raise(stage, filePath string, pos *TextPosition, format string, args ...any) {
	panic(&CompileError{
		Stage:    stage,
		FilePath: filePath,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// CatchErrors recovers a panicking *CompileError raised by Raise, reports it,
// and returns whether an error was caught. Any other panic value is
// re-panicked: only expected compile errors are turned into diagnostics.
// This must always be called via defer.
func CatchErrors(caught *bool) {
	if x := recover(); x != nil {
		if ce, ok := x.(*CompileError); ok {
			ReportCompileError(ce)
			*caught = true
			return
		}

		panic(x)
	}
}

// ReportCompileError displays a compile error and marks the compile as
// failed.
func ReportCompileError(ce *CompileError) {
	markError()

	if currentLogLevel() == LogLevelSilent {
		return
	}

	displayCompileError(ce)
}

// ReportFatal displays a fatal, non-source error (bad CLI usage, an unreadable
// file, an internal invariant violation) and terminates the process.
func ReportFatal(format string, args ...any) {
	markError()
	displayFatal(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// ReportRuntimePanic displays a runtime panic forwarded from the JIT-executed
// program (rt_panic). Unlike a compile error this happens after codegen
// succeeded; it still uses the "compiler: <message>" framing required by §6's
// CLI surface once it reaches the driver's exit path.
func ReportRuntimePanic(message string) {
	markError()
	displayRuntimePanic(message)
}
