// ABOUTME: Source locator resolving code artifacts to file and line
// ABOUTME: Absence is the error channel; synthetic code yields zero values

package artifact

import "runtime"

// Location is a resolved source position. A zero Location means the
// artifact has no file-backed origin.
type Location struct {
	File string
	Line int
}

// Locate resolves the defining file and line of the function entered at
// pc. It never fails: stripped or synthetic code reports ok=false with a
// zero Location.
func Locate(pc uintptr) (loc Location, ok bool) {
	defer func() {
		if recover() != nil {
			loc, ok = Location{}, false
		}
	}()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return Location{}, false
	}
	file, line := fn.FileLine(fn.Entry())
	if file == "" {
		return Location{}, false
	}
	return Location{File: file, Line: line}, true
}

// Name returns the qualified name of the function entered at pc, or
// "<unknown>" when the symbol cannot be resolved.
func Name(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil || fn.Name() == "" {
		return "<unknown>"
	}
	return fn.Name()
}

// Entry returns the canonical entry point for pc, used to deduplicate
// artifacts that share a function body. Falls back to pc itself when the
// symbol is unresolvable.
func Entry(pc uintptr) uintptr {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return pc
	}
	return fn.Entry()
}
