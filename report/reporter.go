package report

import "sync"

// Enumeration of log levels understood by the reporter.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// reporter is the process-global compilation reporter. Every compile shares
// one instance; it is not safe to run two compiles concurrently in the same
// process, which matches the single-threaded, synchronous model of §5.
type reporter struct {
	m        sync.Mutex
	logLevel int
	isErr    bool
}

var rep = &reporter{logLevel: LogLevelVerbose}

// InitReporter (re)initializes the global reporter at the given log level.
func InitReporter(logLevel int) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.isErr = false
}

// AnyErrors reports whether a compile error has been recorded.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.isErr
}

func markError() {
	rep.m.Lock()
	rep.isErr = true
	rep.m.Unlock()
}

func currentLogLevel() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.logLevel
}
