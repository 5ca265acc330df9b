// Package ec defines the small closed set of result codes that every
// layer of drsh returns instead of ad-hoc errors, mirroring the
// DrshEC enum of the reference implementation this shell was modeled
// on: OK, OOM, IO_ERROR, ASSERTION_ERROR, UNIMPLEMENTED_ERROR,
// VALUE_ERROR, EOF, NOT_FOUND, EXIT.
//
// OK is simply a nil error; every function in this module returns
// error and treats nil as success.
package ec

// Code is a sentinel error value. Because sentinels are compared by
// identity, wrapping them with fmt.Errorf("...: %w", Code) and testing
// with errors.Is still works via the standard library's default
// comparable fallback.
type Code string

func (c Code) Error() string { return string(c) }

const (
	OOM                = Code("out of memory")
	IOError            = Code("io error")
	AssertionError     = Code("assertion error")
	UnimplementedError = Code("unimplemented")
	ValueError         = Code("value error")
	EOF                = Code("eof")
	NotFound           = Code("not found")
	Exit               = Code("exit")
)
