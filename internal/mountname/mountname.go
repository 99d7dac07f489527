// Package mountname implements the mount-name prefix skipper: the leading
// "name:" construct that names a library-registered filesystem root.
//
// The algorithmic shape (scan a bounded run of legal bytes, terminate on a
// delimiter, reject on a length overrun) mirrors the teacher's
// internal/normalize/path.go segment scanner, generalized to a single
// fixed-length prefix instead of a repeated body scan.
package mountname

import (
	"github.com/klyr/pathnorm/internal/charclass"
	"github.com/klyr/pathnorm/internal/resultcode"
)

// MaxNameLength is the maximum number of bytes a mount name's identifier
// portion may contain, per SPEC_FULL.md §4.2.1 ("1-15 mount_name_char bytes").
const MaxNameLength = 15

// Skip attempts to recognize a mount name at the start of path. It returns
// the number of bytes consumed (including the trailing colon) and true if a
// mount name was recognized. A name of length 0 or >= 16 before the colon is
// not a mount name at all (not an error; ok is false) and the caller
// reparses the input as having no mount name. A reserved byte within an
// otherwise well-shaped name is reported as err.
func Skip(path string) (consumed int, ok bool, err error) {
	i := 0
	for i < len(path) && i <= MaxNameLength && path[i] != ':' && path[i] != '/' && path[i] != '\\' && path[i] != 0 {
		i++
	}
	if i == 0 || i > MaxNameLength || i >= len(path) || path[i] != ':' {
		return 0, false, nil
	}

	for j := 0; j < i; j++ {
		if charclass.IsMountNameReserved(path[j]) {
			return 0, false, resultcode.InvalidCharacter
		}
	}
	return i + 1, true, nil
}
