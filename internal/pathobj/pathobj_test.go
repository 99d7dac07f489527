package pathobj

import (
	"errors"
	"testing"

	"github.com/klyr/pathnorm/internal/pathfmt"
	"github.com/klyr/pathnorm/internal/resultcode"
)

func TestInitializeStoresVerbatimAndClearsNormalized(t *testing.T) {
	var p Path
	p.Initialize("/aa/../bb")
	if p.String() != "/aa/../bb" {
		t.Fatalf("String() = %q", p.String())
	}
	if p.IsNormalized() {
		t.Fatalf("IsNormalized() = true after plain Initialize")
	}
}

func TestInitializeWithNormalization(t *testing.T) {
	var p Path
	if err := p.InitializeWithNormalization("/aa/bb/../cc", pathfmt.Flags{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "/aa/cc" {
		t.Fatalf("String() = %q, want /aa/cc", p.String())
	}
	if !p.IsNormalized() {
		t.Fatalf("IsNormalized() = false after successful InitializeWithNormalization")
	}
}

func TestInitializeWithNormalizationPropagatesError(t *testing.T) {
	var p Path
	err := p.InitializeWithNormalization("aa/bb", pathfmt.Flags{})
	if !errors.Is(err, resultcode.InvalidPathFormat) {
		t.Fatalf("err = %v, want InvalidPathFormat", err)
	}
}

func TestInitializeWithReplaceUnc(t *testing.T) {
	var p Path
	if err := p.InitializeWithReplaceUnc("//host/share/path"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `\\?\UNC\host/share/path`
	if p.String() != want {
		t.Fatalf("String() = %q, want %q", p.String(), want)
	}
}

func TestInitializeWithReplaceUncLeavesNonUncAlone(t *testing.T) {
	var p Path
	if err := p.InitializeWithReplaceUnc("/aa/bb"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "/aa/bb" {
		t.Fatalf("String() = %q, want /aa/bb", p.String())
	}
}

func TestInsertParentJoinsWithSeparator(t *testing.T) {
	var p Path
	p.Initialize("/aa/bb")
	if err := p.InsertParent("/root"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "/root/aa/bb" {
		t.Fatalf("String() = %q, want /root/aa/bb", p.String())
	}
}

func TestInsertParentClearsNormalizedWhenParentIsNotNormalized(t *testing.T) {
	var p Path
	if err := p.InitializeWithNormalization("/aa/bb", pathfmt.Flags{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.InsertParent("/aa/../bb"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.IsNormalized() {
		t.Fatalf("IsNormalized() = true, want cleared since parent is not independently normalized")
	}
}

func TestInsertParentKeepsNormalizedWhenParentIsNormalized(t *testing.T) {
	var p Path
	if err := p.InitializeWithNormalization("/aa/bb", pathfmt.Flags{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.InsertParent("/root"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsNormalized() {
		t.Fatalf("IsNormalized() = false, want kept true since parent is normalized")
	}
}

func TestInsertParentRejectsWindowsShapedPath(t *testing.T) {
	var p Path
	p.Initialize(`c:\aa`)
	err := p.InsertParent("ignored")
	if !errors.Is(err, resultcode.NotImplemented) {
		t.Fatalf("err = %v, want NotImplemented", err)
	}
}

func TestRemoveChildTrimsLastSegment(t *testing.T) {
	var p Path
	p.Initialize("/aa/bb/cc")
	if err := p.RemoveChild(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "/aa/bb/" {
		t.Fatalf("String() = %q, want /aa/bb/", p.String())
	}
}

func TestRemoveChildTrimsTrailingSeparatorFirst(t *testing.T) {
	var p Path
	p.Initialize("/aa/bb/")
	if err := p.RemoveChild(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "/aa/" {
		t.Fatalf("String() = %q, want /aa/", p.String())
	}
}

func TestRemoveChildOnRootFails(t *testing.T) {
	var p Path
	p.Initialize("/")
	if err := p.RemoveChild(); !errors.Is(err, resultcode.NotImplemented) {
		t.Fatalf("err = %v, want NotImplemented", err)
	}
}

func TestRemoveChildOnDotFails(t *testing.T) {
	var p Path
	p.Initialize(".")
	if err := p.RemoveChild(); !errors.Is(err, resultcode.NotImplemented) {
		t.Fatalf("err = %v, want NotImplemented", err)
	}
}

func TestNormalizeInPlace(t *testing.T) {
	var p Path
	p.Initialize("/aa/bb/../cc")
	if err := p.Normalize(pathfmt.Flags{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "/aa/cc" {
		t.Fatalf("String() = %q, want /aa/cc", p.String())
	}
	if !p.IsNormalized() {
		t.Fatalf("IsNormalized() = false after successful Normalize")
	}
}
