package pathfmt

import "testing"

func TestIsSubPath(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 string
		want   bool
	}{
		{"child is sub of parent", "/a/b", "/a/b/c", true},
		{"parent is sub of child (order independent)", "/a/b/c", "/a/b", true},
		{"backslash never equals slash boundary", "/a/b", `/a/b\c`, false},
		{"root is sub of anything absolute", "/", "/a", true},
		{"two empty paths are not sub paths of each other", "", "", false},
		{"UNC-shaped vs non-UNC-shaped never match", "//a/b", "/a", false},
		{"identical paths are not sub paths", "/a/b", "/a/b", false},
		{"sibling prefix without separator boundary is not a sub path", "/a/bc", "/a/b", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsSubPath(c.p1, c.p2); got != c.want {
				t.Errorf("IsSubPath(%q, %q) = %v, want %v", c.p1, c.p2, got, c.want)
			}
		})
	}
}
