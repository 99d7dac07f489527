// Package pathfmt is the orchestrator (C4): it inspects Flags, dispatches
// through the mount-name and Windows-path skippers, invokes the body
// normalizer, and stitches the results into a canonical path.
//
// Grounded on
// _examples/original_source/src/LibHac/Fs/Common/PathFormatter.cs's
// top-level Normalize/IsNormalized state machine.
package pathfmt

import (
	"strings"

	"github.com/klyr/pathnorm/internal/body"
	"github.com/klyr/pathnorm/internal/charclass"
	"github.com/klyr/pathnorm/internal/mountname"
	"github.com/klyr/pathnorm/internal/resultcode"
	"github.com/klyr/pathnorm/internal/winpath"
)

// DefaultMaxPathLength bounds the convenience Normalize entry point when no
// caller-owned buffer is supplied.
const DefaultMaxPathLength = 0x300 // matches the Switch SDK's EntryNameLengthMax-class buffers

// Normalize validates path against flags and returns its canonical form.
func Normalize(path string, flags Flags) (string, error) {
	out, err := normalize(path, flags)
	if err != nil {
		return "", err
	}
	if len(out) >= DefaultMaxPathLength {
		return "", resultcode.TooLongPath
	}
	return out, nil
}

// NormalizeInto writes the canonical form of path into dst, matching the
// original caller-buffer contract. It reports TooLongPath unless the result
// is strictly shorter than dst, keeping the original's room for a
// terminator.
func NormalizeInto(dst []byte, path string, flags Flags) (int, error) {
	out, err := normalize(path, flags)
	if err != nil {
		return 0, err
	}
	if len(out) >= len(dst) {
		return 0, resultcode.TooLongPath
	}
	return copy(dst, out), nil
}

// IsNormalized reports whether path already equals its own canonical form.
// It is implemented in terms of Normalize (call it, compare bytes) rather
// than a separate hand-rolled scanner: this guarantees the Idempotence and
// IsNormalized-agreement invariants hold by construction instead of by
// keeping two state machines in sync (see DESIGN.md).
func IsNormalized(path string, flags Flags) (bool, error) {
	out, err := Normalize(path, flags)
	if err != nil {
		return false, err
	}
	if out == path {
		return true, nil
	}
	if flags.isAllMixedDialect() && equalIgnoringBackslashSlash(path, out) {
		return true, nil
	}
	return false, nil
}

func equalIgnoringBackslashSlash(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i] == '\\' && b[i] == '/' {
			continue
		}
		return false
	}
	return true
}

// normalize implements the C4 state machine.
func normalize(path string, flags Flags) (string, error) {
	if path == "" {
		if flags.AllowEmptyPath {
			return "", nil
		}
		return "", resultcode.InvalidPath
	}
	if strings.IndexByte(path, 0) >= 0 {
		return "", resultcode.InvalidCharacter
	}

	rest := path
	prefix := ""
	hasMount := false

	if flags.AllowMountName {
		consumed, ok, err := mountname.Skip(rest)
		if err != nil {
			return "", err
		}
		if ok {
			prefix = rest[:consumed]
			rest = rest[consumed:]
			hasMount = true
		}
	}

	isWindows := false
	isDriveRelative := false

	if flags.AllowWindowsPath {
		consumed, canon, driveRel, ok, err := winpath.Skip(rest)
		if err != nil {
			return "", err
		}
		if ok {
			isWindows = true
			isDriveRelative = driveRel
			prefix += canon
			rest = rest[consumed:]
		}
	}

	if !isWindows {
		if hasMount && len(rest) > 0 && rest[0] == '\\' {
			return "", resultcode.InvalidPathFormat
		}

		switch {
		case flags.AllowRelativePath && len(rest) > 0 && rest[0] == '.' &&
			(len(rest) == 1 || charclass.IsSeparator(rest[1], flags.AllowBackslash)):
			if len(rest) == 1 {
				return finish(prefix+".", flags), nil
			}
			if flags.AllowWindowsPath && winpath.LooksLikeStart(rest[1:]) {
				return "", resultcode.InvalidPathFormat
			}
			prefix += "."
			rest = rest[1:]

		case len(rest) > 0 && charclass.IsSeparator(rest[0], flags.AllowBackslash):
			// Plain absolute body; rest is unchanged.

		default:
			return "", resultcode.InvalidPathFormat
		}
	}

	bodyOut, err := body.Normalize(rest, body.Options{
		IsWindows:          isWindows,
		IsDriveRelative:    isDriveRelative,
		AllowBackslash:     flags.AllowBackslash,
		AllowAllCharacters: flags.AllowAllCharacters,
	})
	if err != nil {
		return "", err
	}

	return finish(prefix+bodyOut, flags), nil
}

// finish applies the WRMBC mixed-dialect backslash rewrite (SPEC_FULL.md §9
// item 3) as a final step, when applicable.
func finish(result string, flags Flags) string {
	if flags.isAllMixedDialect() {
		return strings.ReplaceAll(result, "\\", "/")
	}
	return result
}
