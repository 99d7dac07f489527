package config

import "github.com/klyr/pathnorm/internal/pathfmt"

// Config is the top-level shape of a pathnorm service configuration file.
type Config struct {
	ConfigVersion int                `yaml:"configVersion"`
	Server        ServerConfig       `yaml:"server"`
	Dialects      map[string]Dialect `yaml:"dialects"`
	VectorSuites  []VectorSuite      `yaml:"vectorSuites"`
	Logging       LoggingConfig      `yaml:"logging"`
	Metrics       MetricsConfig      `yaml:"metrics"`

	baseDir string `yaml:"-"`
}

type ServerConfig struct {
	Listen    string          `yaml:"listen"`
	TLS       TLSConfig       `yaml:"tls"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"certFile"`
	KeyFile  string `yaml:"keyFile"`
}

type RateLimitConfig struct {
	Enabled    bool    `yaml:"enabled"`
	RPS        float64 `yaml:"rps"`
	Burst      int     `yaml:"burst"`
	StatusCode int     `yaml:"statusCode"`
}

// Dialect is a named, reusable PathFlags bundle a client selects by name
// instead of spelling out individual flags on every request.
type Dialect struct {
	AllowWindowsPath   bool `yaml:"allowWindowsPath"`
	AllowRelativePath  bool `yaml:"allowRelativePath"`
	AllowEmptyPath     bool `yaml:"allowEmptyPath"`
	AllowMountName     bool `yaml:"allowMountName"`
	AllowBackslash     bool `yaml:"allowBackslash"`
	AllowAllCharacters bool `yaml:"allowAllCharacters"`
}

// Flags converts a Dialect into the pathfmt.Flags value the core operates on.
func (d Dialect) Flags() pathfmt.Flags {
	return pathfmt.Flags{
		AllowWindowsPath:   d.AllowWindowsPath,
		AllowRelativePath:  d.AllowRelativePath,
		AllowEmptyPath:     d.AllowEmptyPath,
		AllowMountName:     d.AllowMountName,
		AllowBackslash:     d.AllowBackslash,
		AllowAllCharacters: d.AllowAllCharacters,
	}
}

// VectorSuite names a fixture file of golden test vectors and how strict a
// failure should be treated. Validate requires Dialect to name a configured
// dialect, but the vectors runner does not apply it: each case runs under
// its own flags string.
type VectorSuite struct {
	Name        string `yaml:"name"`
	Dialect     string `yaml:"dialect"`
	FixturePath string `yaml:"fixturePath"`
	FailOnMiss  bool   `yaml:"failOnMiss"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	EventLog string `yaml:"eventLog"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

func (c *Config) BaseDir() string {
	return c.baseDir
}

func (c *Config) ResolvePath(path string) string {
	return c.resolvePath(path)
}
