// Package winpath implements the Windows drive-letter, UNC, and Win32
// namespace prefix skipper.
//
// Grounded on _examples/original_source/src/LibHac/Fs/Common/PathFormatter.cs
// (ParseWindowsPathImpl/SkipWindowsPath) and WindowsPath.cs (IsUncPath,
// IsWindowsDrive, IsDosDevicePath) for shape recognition order.
package winpath

import (
	"github.com/klyr/pathnorm/internal/charclass"
	"github.com/klyr/pathnorm/internal/resultcode"
)

// Skip attempts to recognize a Windows path shape (drive-letter, UNC, or
// Win32 namespace) at the start of rest. It returns the bytes consumed, a
// canonical rendering of the consumed prefix (separators normalized to '\',
// case preserved), whether the shape leaves the body drive-relative (no
// leading separator), and ok = true if any shape was recognized.
//
// The consumed length always stops immediately before the separator that
// begins the body, so that separator is still visible to the body
// normalizer — the one exception is a drive-relative path, which consumes
// no separator because there isn't one.
func Skip(rest string) (consumed int, canonical string, isDriveRelative bool, ok bool, err error) {
	if len(rest) >= 4 && isSep(rest[0]) && isSep(rest[1]) && (rest[2] == '?' || rest[2] == '.') && isSep(rest[3]) {
		return skipNamespace(rest)
	}
	if len(rest) >= 2 && charclass.IsDriveLetter(rest[0]) && rest[1] == ':' {
		return skipDrive(rest)
	}
	if len(rest) >= 2 && isSep(rest[0]) && isSep(rest[1]) {
		return skipUNC(rest)
	}
	return 0, "", false, false, nil
}

func isSep(b byte) bool { return b == '/' || b == '\\' }

func skipDrive(rest string) (int, string, bool, bool, error) {
	drive := string(rest[0]) + ":"
	if len(rest) > 2 && isSep(rest[2]) {
		return 2, drive, false, true, nil
	}
	return 2, drive, true, true, nil
}

// skipUNC handles a UNC prefix whose two leading separators are still part
// of rest (the ordinary "\\host\share" shape reached from the top of Skip).
func skipUNC(rest string) (int, string, bool, bool, error) {
	if len(rest) > 2 && isSep(rest[2]) {
		return 0, "", false, false, resultcode.InvalidPathFormat
	}
	n, canon, err := scanHostShare(rest[2:])
	if err != nil {
		return 0, "", false, false, err
	}
	return 2 + n, "\\\\" + canon, false, true, nil
}

// scanHostShare scans a "host<sep>share" pair starting immediately at s
// (no leading separators), returning the number of bytes consumed and a
// canonical "host\share" rendering. Shared by the plain "\\host\share" shape
// and the "\\?\UNC\host\share" namespace shape.
func scanHostShare(s string) (int, string, error) {
	hostEnd := 0
	for hostEnd < len(s) && !isSep(s[hostEnd]) {
		hostEnd++
	}
	host := s[:hostEnd]
	if err := validateHostOrShare(host); err != nil {
		return 0, "", err
	}
	if hostEnd >= len(s) {
		return 0, "", resultcode.InvalidPathFormat
	}
	shareStart := hostEnd + 1
	shareEnd := shareStart
	for shareEnd < len(s) && !isSep(s[shareEnd]) {
		shareEnd++
	}
	share := s[shareStart:shareEnd]
	if err := validateHostOrShare(share); err != nil {
		return 0, "", err
	}
	return shareEnd, host + "\\" + share, nil
}

func skipNamespace(rest string) (int, string, bool, bool, error) {
	marker := rest[2]
	tail := rest[4:]

	if len(tail) >= 2 && charclass.IsDriveLetter(tail[0]) && tail[1] == ':' {
		consumed, canon, driveRel, _, err := skipDrive(tail)
		if err != nil {
			return 0, "", false, false, err
		}
		return 4 + consumed, "\\\\" + string(marker) + "\\" + canon, driveRel, true, nil
	}

	if len(tail) >= 2 && isSep(tail[0]) && isSep(tail[1]) {
		consumed, canon, driveRel, _, err := skipUNC(tail)
		if err != nil {
			return 0, "", false, false, err
		}
		return 4 + consumed, "\\\\" + string(marker) + canon, driveRel, true, nil
	}

	if len(tail) > 4 && (tail[:3] == "UNC" || tail[:3] == "unc") && isSep(tail[3]) {
		n, canon, err := scanHostShare(tail[4:])
		if err != nil {
			return 0, "", false, false, err
		}
		return 4 + 4 + n, "\\\\" + string(marker) + "\\UNC\\" + canon, false, true, nil
	}

	if marker == '.' {
		// Device names under \\.\ follow mount-name shape but are not
		// colon-terminated in the input, so scan directly instead of
		// reusing mountname.Skip (which requires a trailing colon).
		end := 0
		for end < len(tail) && !isSep(tail[end]) && tail[end] != 0 {
			end++
		}
		if end == 0 {
			return 0, "", false, false, resultcode.InvalidPathFormat
		}
		device := tail[:end]
		for i := 0; i < len(device); i++ {
			if charclass.IsMountNameReserved(device[i]) {
				return 0, "", false, false, resultcode.InvalidCharacter
			}
		}
		return 4 + end, "\\\\.\\" + device, false, true, nil
	}

	return 0, "", false, false, resultcode.InvalidPathFormat
}

func validateHostOrShare(s string) error {
	if s == "" || s == "." || s == ".." {
		return resultcode.InvalidPathFormat
	}
	for i := 0; i < len(s); i++ {
		if !charclass.IsHostNameChar(s[i]) {
			return resultcode.InvalidPathFormat
		}
	}
	return nil
}

// LooksLikeStart reports whether rest begins with a two-separator (UNC-like)
// run. When AllowWindowsPath is set, the formatter uses it to reject a
// relative marker followed by a UNC-looking body, since Skip only examines
// the start of the path; pathobj uses it to spot UNC- and namespace-shaped
// paths.
func LooksLikeStart(rest string) bool {
	return len(rest) >= 2 && isSep(rest[0]) && isSep(rest[1])
}
