package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig(t *testing.T, dir string) *Config {
	t.Helper()
	fixture := filepath.Join(dir, "vectors.yaml")
	if err := os.WriteFile(fixture, []byte("cases: []\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return &Config{
		ConfigVersion: 1,
		Server: ServerConfig{
			Listen: "127.0.0.1:8080",
		},
		Dialects: map[string]Dialect{
			"posix": {AllowEmptyPath: true},
		},
		VectorSuites: []VectorSuite{
			{Name: "posix-basics", Dialect: "posix", FixturePath: "vectors.yaml"},
		},
		baseDir: dir,
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBadConfigVersion(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	cfg.ConfigVersion = 2
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("err type = %T, want *ValidationError", err)
	}
	found := false
	for _, p := range verr.Problems {
		if p == "configVersion must be 1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Problems = %v, want to include configVersion complaint", verr.Problems)
	}
}

func TestValidateRejectsUnknownSuiteDialect(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	cfg.VectorSuites[0].Dialect = "does-not-exist"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestValidateRejectsDuplicateSuiteNames(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	cfg.VectorSuites = append(cfg.VectorSuites, cfg.VectorSuites[0])
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestValidateAccumulatesMultipleProblems(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	cfg.ConfigVersion = 0
	cfg.Server.Listen = ""
	err := cfg.Validate()
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("err type = %T, want *ValidationError", err)
	}
	if len(verr.Problems) < 2 {
		t.Fatalf("Problems = %v, want at least 2 accumulated problems", verr.Problems)
	}
}

func TestDialectFlagsMapping(t *testing.T) {
	d := Dialect{AllowWindowsPath: true, AllowRelativePath: true}
	f := d.Flags()
	if !f.AllowWindowsPath || !f.AllowRelativePath {
		t.Fatalf("Flags() = %+v, want AllowWindowsPath and AllowRelativePath set", f)
	}
	if f.AllowMountName {
		t.Fatalf("Flags() = %+v, want AllowMountName unset", f)
	}
}
