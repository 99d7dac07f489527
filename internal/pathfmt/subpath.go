package pathfmt

// IsSubPath reports whether one of p1, p2 is a strict directory prefix of
// the other. It does not normalize either input; '\' is never treated as
// equivalent to '/'.
//
// Ported directly from
// _examples/original_source/src/LibHac/Fs/Common/PathUtility.cs's
// IsSubPath, translated from the original's NUL-terminated-span comparison
// to Go's length-bounded string comparison.
func IsSubPath(p1, p2 string) bool {
	if isUNCShaped(p1) != isUNCShaped(p2) {
		return false
	}

	if p1 == "/" && len(p2) > 1 && p2[0] == '/' {
		return true
	}
	if p2 == "/" && len(p1) > 1 && p1[0] == '/' {
		return true
	}

	n := len(p1)
	if len(p2) < n {
		n = len(p2)
	}
	for i := 0; i < n; i++ {
		if p1[i] != p2[i] {
			return false
		}
	}

	switch {
	case len(p1) == len(p2):
		return false
	case len(p1) < len(p2):
		return p2[len(p1)] == '/'
	default:
		return p1[len(p2)] == '/'
	}
}

func isUNCShaped(p string) bool {
	return len(p) >= 2 && (p[0] == '/' || p[0] == '\\') && (p[1] == '/' || p[1] == '\\')
}
