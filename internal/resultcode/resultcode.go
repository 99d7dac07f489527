// Package resultcode defines the bit-exact numeric error codes exposed at
// the path-normalization core's external boundary.
package resultcode

import "fmt"

// Code is a bit-exact numeric result value. Callers may match on it
// directly; it is also embedded in every Error returned by this module.
type Code uint32

const (
	Success                   Code = 0x000000
	CodeInvalidPath           Code = 0x2EE402
	CodeTooLongPath           Code = 0x2EE602
	CodeInvalidCharacter      Code = 0x2EE802
	CodeInvalidPathFormat     Code = 0x2EEA02
	CodeDirectoryUnobtainable Code = 0x2EEC02
	CodeNotImplemented        Code = 0x177202
)

// Error is a result carrying one of the non-success Codes above.
type Error struct {
	code Code
	name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (0x%06X)", e.name, uint32(e.code))
}

// Code returns the bit-exact numeric result value.
func (e *Error) Code() Code { return e.code }

// Is allows errors.Is(err, resultcode.InvalidPath) to match by code, so
// wrapped instances still compare equal.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.code == e.code
}

var (
	InvalidPath           = &Error{code: CodeInvalidPath, name: "InvalidPath"}
	TooLongPath           = &Error{code: CodeTooLongPath, name: "TooLongPath"}
	InvalidCharacter      = &Error{code: CodeInvalidCharacter, name: "InvalidCharacter"}
	InvalidPathFormat     = &Error{code: CodeInvalidPathFormat, name: "InvalidPathFormat"}
	DirectoryUnobtainable = &Error{code: CodeDirectoryUnobtainable, name: "DirectoryUnobtainable"}
	NotImplemented        = &Error{code: CodeNotImplemented, name: "NotImplemented"}
)

// FromCode maps a numeric Code back to its named Error, for callers that
// received a code over the wire (e.g. the HTTP API) and need the Go value.
func FromCode(c Code) error {
	switch c {
	case Success:
		return nil
	case CodeInvalidPath:
		return InvalidPath
	case CodeTooLongPath:
		return TooLongPath
	case CodeInvalidCharacter:
		return InvalidCharacter
	case CodeInvalidPathFormat:
		return InvalidPathFormat
	case CodeDirectoryUnobtainable:
		return DirectoryUnobtainable
	case CodeNotImplemented:
		return NotImplemented
	default:
		return fmt.Errorf("resultcode: unknown code 0x%06X", uint32(c))
	}
}

// Name returns the result's symbolic name, or "Success" for a nil error
// produced by this package, or "Unknown" for anything else.
func Name(err error) string {
	if err == nil {
		return "Success"
	}
	if e, ok := err.(*Error); ok {
		return e.name
	}
	return "Unknown"
}
