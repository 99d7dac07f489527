// Package vectors runs golden test-vector suites against the core, backing
// the "vectors" CLI command and giving SPEC_FULL.md's scenario table a
// machine-checkable home outside of _test.go files.
//
// Grounded on internal/rules/types.go and internal/rules/engine.go
// (teacher): kept the Rule/Matcher/Engine.Evaluate/Result
// iterate-and-accumulate shape, renamed to VectorCase/Engine.Run/
// Result{Passed,Failed} and matching against pathfmt.Normalize/
// IsNormalized/IsSubPath instead of a Matcher.Match pattern engine.
package vectors

import (
	"fmt"
	"os"

	"github.com/klyr/pathnorm/internal/pathfmt"
	"github.com/klyr/pathnorm/internal/resultcode"
	"gopkg.in/yaml.v3"
)

// Operation names the core function a VectorCase exercises.
type Operation string

const (
	OpNormalize    Operation = "normalize"
	OpIsNormalized Operation = "is_normalized"
	OpIsSubPath    Operation = "is_subpath"
)

// VectorCase is one golden test vector: an input (or pair, for is_subpath),
// a dialect expressed as a ParseFlags-style letter string, and the expected
// outcome.
type VectorCase struct {
	Name             string    `yaml:"name"`
	Operation        Operation `yaml:"operation"`
	Input            string    `yaml:"input"`
	Input2           string    `yaml:"input2"` // second path, for is_subpath
	Flags            string    `yaml:"flags"`
	WantResult       string    `yaml:"wantResult"`
	WantErr          string    `yaml:"wantErr"` // resultcode symbolic name, empty for success
	WantIsNormalized bool      `yaml:"wantIsNormalized"`
	WantIsSubPath    bool      `yaml:"wantIsSubPath"`
}

// CaseResult is the outcome of running a single VectorCase.
type CaseResult struct {
	Case   VectorCase
	Got    string
	GotErr error
	Reason string
}

// Result accumulates every case's outcome from a single Engine.Run.
type Result struct {
	Passed []CaseResult
	Failed []CaseResult
}

// Engine runs a fixed set of VectorCases against the core.
type Engine struct {
	Cases []VectorCase
}

// LoadCases reads a YAML fixture file of VectorCases.
func LoadCases(path string) ([]VectorCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vector fixture: %w", err)
	}

	var doc struct {
		Cases []VectorCase `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse vector fixture: %w", err)
	}
	return doc.Cases, nil
}

// Run executes every case and returns the accumulated Result.
func (e *Engine) Run() Result {
	var result Result

	for _, c := range e.Cases {
		cr := e.runOne(c)
		if cr.Reason == "" {
			result.Passed = append(result.Passed, cr)
		} else {
			result.Failed = append(result.Failed, cr)
		}
	}

	return result
}

func (e *Engine) runOne(c VectorCase) CaseResult {
	flags := pathfmt.ParseFlags(c.Flags)

	switch c.Operation {
	case OpNormalize:
		out, err := pathfmt.Normalize(c.Input, flags)
		cr := CaseResult{Case: c, Got: out, GotErr: err}
		if reason := checkErr(c.WantErr, err); reason != "" {
			cr.Reason = reason
			return cr
		}
		if err == nil && out != c.WantResult {
			cr.Reason = fmt.Sprintf("Normalize(%q) = %q, want %q", c.Input, out, c.WantResult)
		}
		return cr

	case OpIsNormalized:
		isNorm, err := pathfmt.IsNormalized(c.Input, flags)
		cr := CaseResult{Case: c, Got: fmt.Sprintf("%v", isNorm), GotErr: err}
		if reason := checkErr(c.WantErr, err); reason != "" {
			cr.Reason = reason
			return cr
		}
		if err == nil && isNorm != c.WantIsNormalized {
			cr.Reason = fmt.Sprintf("IsNormalized(%q) = %v, want %v", c.Input, isNorm, c.WantIsNormalized)
		}
		return cr

	case OpIsSubPath:
		got := pathfmt.IsSubPath(c.Input, c.Input2)
		cr := CaseResult{Case: c, Got: fmt.Sprintf("%v", got)}
		if got != c.WantIsSubPath {
			cr.Reason = fmt.Sprintf("IsSubPath(%q, %q) = %v, want %v", c.Input, c.Input2, got, c.WantIsSubPath)
		}
		return cr

	default:
		return CaseResult{Case: c, Reason: fmt.Sprintf("unknown operation %q", c.Operation)}
	}
}

func checkErr(wantErr string, err error) string {
	gotName := resultcode.Name(err)
	if wantErr == "" {
		if err != nil {
			return fmt.Sprintf("unexpected error: %v", err)
		}
		return ""
	}
	if gotName != wantErr {
		return fmt.Sprintf("error = %q, want %q", gotName, wantErr)
	}
	return ""
}
