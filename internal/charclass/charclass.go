// Package charclass classifies individual path bytes: separators, reserved
// characters, and the legal-character sets for mount names and host names.
package charclass

// IsSeparator reports whether b is a path separator. '/' is always a
// separator; '\' is one too unless the caller allows backslashes as literal
// data bytes.
func IsSeparator(b byte, allowBackslash bool) bool {
	if b == '/' {
		return true
	}
	return b == '\\' && !allowBackslash
}

// IsReserved reports whether b is one of the reserved body bytes :*?<>|.
func IsReserved(b byte) bool {
	switch b {
	case ':', '*', '?', '<', '>', '|':
		return true
	default:
		return false
	}
}

// IsDriveLetter reports whether b is an ASCII letter.
func IsDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsMountNameChar reports whether b may appear inside a mount name. Mount
// names exclude path separators and the colon terminator; the reserved set
// *?<>| is rejected as InvalidCharacter by the mount-name skipper, but other
// punctuation (e.g. &) is permitted.
func IsMountNameChar(b byte) bool {
	if b == '/' || b == '\\' || b == ':' || b == 0 {
		return false
	}
	return b >= 0x20 && b < 0x7F
}

// IsMountNameReserved reports whether b is one of the reserved bytes the
// mount-name skipper rejects with InvalidCharacter.
func IsMountNameReserved(b byte) bool {
	switch b {
	case '*', '?', '<', '>', '|':
		return true
	default:
		return false
	}
}

// IsHostNameChar reports whether b may appear inside a UNC host or share
// name: alphanumerics, underscore, hyphen, and dot.
func IsHostNameChar(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b == '_' || b == '-' || b == '.':
		return true
	default:
		return false
	}
}
