package bdgraph

import "fmt"

// PreconditionError reports a caller-side programming error: an invalid id,
// a name collision on create_path_handle, a duplicate node id, a
// non-existent path name, or a zero-length sequence (spec §7.1). These are
// abortive: the core does not attempt to continue past one.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("bdgraph: %s: %s", e.Op, e.Msg)
}

func precondition(op, format string, args ...any) error {
	return &PreconditionError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// panicPrecondition aborts the current operation with a PreconditionError,
// matching the source's "report and do not continue" handling of
// programming errors (spec §7.1). Every precondition check in the package
// goes through this; precondition itself is only called from here.
func panicPrecondition(op, format string, args ...any) {
	panic(precondition(op, format, args...))
}
