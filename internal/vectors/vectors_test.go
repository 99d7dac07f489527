package vectors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEngineRunNormalizeCases(t *testing.T) {
	e := Engine{Cases: []VectorCase{
		{Name: "posix collapse", Operation: OpNormalize, Input: "/aa/bb/../cc", WantResult: "/aa/cc"},
		{Name: "relative rejected", Operation: OpNormalize, Input: "../aa", Flags: "R", WantErr: "InvalidPathFormat"},
	}}
	result := e.Run()
	if len(result.Passed) != 2 {
		t.Fatalf("Passed = %d, want 2 (failed: %+v)", len(result.Passed), result.Failed)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("Failed = %+v, want none", result.Failed)
	}
}

func TestEngineRunDetectsMismatch(t *testing.T) {
	e := Engine{Cases: []VectorCase{
		{Name: "wrong expectation", Operation: OpNormalize, Input: "/aa/bb/../cc", WantResult: "/wrong"},
	}}
	result := e.Run()
	if len(result.Failed) != 1 {
		t.Fatalf("Failed = %d, want 1", len(result.Failed))
	}
}

func TestEngineRunIsNormalized(t *testing.T) {
	e := Engine{Cases: []VectorCase{
		{Name: "already normalized", Operation: OpIsNormalized, Input: "/aa/bb", WantIsNormalized: true},
		{Name: "not normalized", Operation: OpIsNormalized, Input: "/aa/../bb", WantIsNormalized: false},
	}}
	result := e.Run()
	if len(result.Failed) != 0 {
		t.Fatalf("Failed = %+v, want none", result.Failed)
	}
}

func TestEngineRunIsSubPath(t *testing.T) {
	e := Engine{Cases: []VectorCase{
		{Name: "child of parent", Operation: OpIsSubPath, Input: "/a/b", Input2: "/a/b/c", WantIsSubPath: true},
	}}
	result := e.Run()
	if len(result.Passed) != 1 {
		t.Fatalf("Passed = %d, want 1 (failed: %+v)", len(result.Passed), result.Failed)
	}
}

func TestEngineRunUnknownOperation(t *testing.T) {
	e := Engine{Cases: []VectorCase{{Name: "bogus", Operation: "not-a-real-op"}}}
	result := e.Run()
	if len(result.Failed) != 1 {
		t.Fatalf("Failed = %d, want 1", len(result.Failed))
	}
}

func TestLoadCases(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "vectors.yaml")
	content := `
cases:
  - name: posix collapse
    operation: normalize
    input: /aa/bb/../cc
    wantResult: /aa/cc
  - name: subpath check
    operation: is_subpath
    input: /a/b
    input2: /a/b/c
    wantIsSubPath: true
`
	if err := os.WriteFile(fixture, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cases, err := LoadCases(fixture)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("len(cases) = %d, want 2", len(cases))
	}

	e := Engine{Cases: cases}
	result := e.Run()
	if len(result.Failed) != 0 {
		t.Fatalf("Failed = %+v, want none", result.Failed)
	}
}
