// Package runtimert vendors the native runtime a compiled Fusion module
// links against (§6): dynamic library loading, libffi-backed external
// calls, and the print/string/file built-ins. It exists purely to get real
// `rt_*` C symbols into the running process — importing it for its side
// effect is enough; nothing here is called from Go directly.
//
// Grounded on original_source/runtime_c/src/{dl,ffi}.c for the loader and
// FFI trampoline (restyled as a single package rather than a standalone C
// library); print/string/file I/O have no original_source analog and were
// written fresh against §6's table.
package runtimert

/*
#cgo LDFLAGS: -ldl -lffi -Wl,--export-dynamic
#include "runtime.h"
*/
import "C"

// Init is a no-op and has no callers. The driver's blank import of this
// package is what keeps its object code — and therefore every rt_* symbol
// in it — linked into the final binary; jit.Run's execution engine finds
// them later by name via dlsym(RTLD_DEFAULT, ...) against the running
// process (§4.7).
func Init() {}
