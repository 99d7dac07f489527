// Package pathobj implements the Path object (C5): an owning handle around
// a path string that tracks whether its contents are known to be
// normalized, and supports re-parenting and trailing-segment edits without
// requiring the caller to re-run the full Formatter every time.
//
// Grounded on
// _examples/original_source/src/LibHac/Fs/Path.cs's InsertParent,
// RemoveChild, and InitializeWithReplaceUnc for operation shape; the
// pathological InitializeWithReplaceUnc corner cases (mount names embedding
// "//", double-mount-name inputs) are out of scope per SPEC_FULL.md §9
// item 1 — only the documented general rule is implemented.
package pathobj

import (
	"strings"

	"github.com/klyr/pathnorm/internal/allocator"
	"github.com/klyr/pathnorm/internal/charclass"
	"github.com/klyr/pathnorm/internal/pathfmt"
	"github.com/klyr/pathnorm/internal/resultcode"
	"github.com/klyr/pathnorm/internal/winpath"
)

// defaultFlags is the flag set InsertParent uses to check whether a parent
// string is independently normalized, matching the original's use of its
// own default PathFlags when making that determination.
var defaultFlags = pathfmt.Flags{
	AllowRelativePath: true,
	AllowMountName:    true,
}

// Path owns a path string and tracks whether it is known to be normalized.
// It is not safe for concurrent mutation: callers must serialize access to
// a single Path, matching the original's single-owner contract.
type Path struct {
	buf        []byte
	normalized bool
}

// Initialize copies bytes verbatim and marks the path as not normalized.
func (p *Path) Initialize(bytes string) {
	p.store(bytes)
	p.normalized = false
}

// InitializeWithNormalization runs the Formatter over bytes and stores the
// canonical result, marking the path normalized on success.
func (p *Path) InitializeWithNormalization(bytes string, flags pathfmt.Flags) error {
	out, err := pathfmt.Normalize(bytes, flags)
	if err != nil {
		return err
	}
	p.store(out)
	p.normalized = true
	return nil
}

// InitializeWithReplaceUnc stores bytes as-is unless it begins with a
// leading UNC-style "//host..." or "\\host..." run, in which case that
// prefix is rewritten to the library-internal "\\?\UNC\host..." escaped
// form before storing.
func (p *Path) InitializeWithReplaceUnc(bytes string) error {
	if len(bytes) < 2 || !isSep(bytes[0]) || !isSep(bytes[1]) {
		p.Initialize(bytes)
		return nil
	}
	rest := bytes[2:]
	p.store(`\\?\UNC\` + rest)
	p.normalized = false
	return nil
}

// InsertParent prepends parent to the stored path, joining with a single
// separator. Returns NotImplemented if the stored path is Windows-shaped
// (drive-letter, UNC, or namespace prefix), matching the original's
// refusal to parent such paths.
func (p *Path) InsertParent(parent string) error {
	child := p.String()
	if isWindowsShaped(child) {
		return resultcode.NotImplemented
	}

	joined := join(parent, child)
	wasNormalized := p.normalized
	p.store(joined)

	if wasNormalized {
		isNorm, err := pathfmt.IsNormalized(parent, defaultFlags)
		if err != nil || !isNorm {
			p.normalized = false
		}
	}
	return nil
}

// RemoveChild trims the stored path's trailing separator (if any) and its
// final non-empty segment, leaving the parent's trailing separator in
// place. Returns NotImplemented for the root path or "." alone, matching
// the original's refusal on inputs with no segment left to remove.
func (p *Path) RemoveChild() error {
	s := p.String()
	if s == "." || s == "/" || s == `\` {
		return resultcode.NotImplemented
	}

	trimmed := strings.TrimRight(s, `/\`)
	if trimmed == "" {
		return resultcode.NotImplemented
	}

	idx := strings.LastIndexAny(trimmed, `/\`)
	if idx < 0 {
		return resultcode.NotImplemented
	}

	p.store(trimmed[:idx+1])
	return nil
}

// Normalize runs the Formatter over the stored path in place.
func (p *Path) Normalize(flags pathfmt.Flags) error {
	out, err := pathfmt.Normalize(p.String(), flags)
	if err != nil {
		return err
	}
	p.store(out)
	p.normalized = true
	return nil
}

// String returns the stored path.
func (p *Path) String() string {
	return string(p.buf)
}

// IsNormalized reports whether the stored path is known to be normalized.
func (p *Path) IsNormalized() bool {
	return p.normalized
}

func (p *Path) store(s string) {
	if p.buf != nil {
		allocator.Free(p.buf)
	}
	buf := allocator.Alloc(len(s))
	copy(buf, s)
	p.buf = buf
}

func isSep(b byte) bool { return b == '/' || b == '\\' }

func isWindowsShaped(s string) bool {
	if len(s) >= 2 && charclass.IsDriveLetter(s[0]) && s[1] == ':' {
		return true
	}
	return winpath.LooksLikeStart(s)
}

func join(parent, child string) string {
	switch {
	case parent == "":
		return child
	case len(parent) > 0 && isSep(parent[len(parent)-1]):
		return parent + strings.TrimLeft(child, `/\`)
	case len(child) > 0 && isSep(child[0]):
		return parent + child
	default:
		return parent + "/" + child
	}
}
