// Package body implements the body normalizer (C3): a single-pass,
// small-stack rewriter that collapses "." and ".." segments and duplicate
// separators in an absolute or relative path body.
//
// The segment-stack collapse algorithm is grounded directly on the
// teacher's internal/normalize/path.go NormalizePath function (a
// strings.Split-plus-stack-of-strings collapse); this package generalizes
// that shape to dialect-aware clamp/fail semantics and reserved-byte
// validation, following
// _examples/original_source/src/LibHac/Fs/Common/PathNormalizer.cs's
// Normalize state machine.
package body

import (
	"strings"

	"github.com/klyr/pathnorm/internal/charclass"
	"github.com/klyr/pathnorm/internal/resultcode"
)

// Options configures how a body is scanned and rendered.
type Options struct {
	// IsWindows selects '\' as the canonical output separator and enables
	// clamp-on-escape (rather than fail-on-escape) semantics.
	IsWindows bool
	// IsDriveRelative means the body has no leading separator (e.g. the
	// "foo/bar" remainder of "c:foo/bar") and also clamps on escape.
	IsDriveRelative bool
	// AllowBackslash means '\' is a literal data byte, not a separator.
	AllowBackslash bool
	// AllowAllCharacters disables the reserved-byte check.
	AllowAllCharacters bool
}

// Normalize collapses "." and ".." segments and duplicate separators in
// body, returning the canonical rendering.
func Normalize(bodyStr string, opts Options) (string, error) {
	n := len(bodyStr)
	startsWithSep := n > 0 && charclass.IsSeparator(bodyStr[0], opts.AllowBackslash)

	if !startsWithSep && !opts.IsDriveRelative {
		return "", resultcode.InvalidPathFormat
	}

	sep := byte('/')
	if opts.IsWindows {
		sep = '\\'
	}
	clamp := opts.IsWindows || opts.IsDriveRelative

	isSep := func(b byte) bool { return charclass.IsSeparator(b, opts.AllowBackslash) }
	if !opts.IsWindows && !opts.AllowBackslash {
		// A bare '\' is not a separator here; only one immediately bordering
		// a ".." token is promoted to a real one first, matching
		// ReplaceParentDirectoryPath's narrow rewrite. Every other '\'
		// stays literal and merges into whichever segment it sits inside.
		bodyStr = promoteDotDotBackslashes(bodyStr)
		n = len(bodyStr)
		isSep = func(b byte) bool { return b == '/' }
	}

	var segments []string
	i := 0
	if startsWithSep {
		i = 1
	}
	for i < n {
		j := i
		for j < n && !isSep(bodyStr[j]) {
			j++
		}
		seg := bodyStr[i:j]
		switch seg {
		case "":
			// Duplicate separator; drop.
		case ".":
			// Drop.
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			} else if !clamp {
				return "", resultcode.DirectoryUnobtainable
			}
			// else: clamp, no-op.
		default:
			if err := validateSegment(seg, opts.AllowAllCharacters); err != nil {
				return "", err
			}
			segments = append(segments, seg)
		}
		i = j + 1
	}

	var b strings.Builder
	if startsWithSep {
		b.WriteByte(sep)
	}
	for idx, seg := range segments {
		if idx > 0 {
			b.WriteByte(sep)
		}
		b.WriteString(seg)
	}
	return b.String(), nil
}

// promoteDotDotBackslashes converts a '\' into a real '/' only when it
// immediately borders a ".." token (on either side, or at end of string),
// following LibHac's ReplaceParentDirectoryPath. A "\" elsewhere in the body
// is left untouched, so it merges the names on either side of it into one
// atomic segment for the scanner that follows.
func promoteDotDotBackslashes(s string) string {
	if !strings.Contains(s, "..") {
		return s
	}
	b := []byte(s)
	n := len(b)
	for i := 1; i+1 < n; i++ {
		if s[i] != '.' || s[i+1] != '.' {
			continue
		}
		left := s[i-1]
		leftIsSep := left == '/' || left == '\\'
		if i+2 < n {
			right := s[i+2]
			rightIsSep := right == '/' || right == '\\'
			if leftIsSep && rightIsSep {
				if left == '\\' {
					b[i-1] = '/'
				}
				if right == '\\' {
					b[i+2] = '/'
				}
			}
		} else if left == '\\' {
			b[i-1] = '/'
		}
	}
	return string(b)
}

func validateSegment(seg string, allowAllCharacters bool) error {
	for i := 0; i < len(seg); i++ {
		b := seg[i]
		if b == 0 {
			return resultcode.InvalidCharacter
		}
		if !allowAllCharacters && charclass.IsReserved(b) {
			return resultcode.InvalidCharacter
		}
	}
	return nil
}
