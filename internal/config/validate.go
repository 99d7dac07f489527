package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type ValidationError struct {
	Problems []string
}

func (v *ValidationError) Add(format string, args ...any) {
	v.Problems = append(v.Problems, fmt.Sprintf(format, args...))
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%d validation error(s)", len(v.Problems))
}

func (c *Config) Validate() error {
	v := &ValidationError{}

	if c.ConfigVersion != 1 {
		v.Add("configVersion must be 1")
	}

	if err := validateListen(c.Server.Listen); err != nil {
		v.Add("server.listen invalid: %v", err)
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" {
			v.Add("server.tls.certFile required when tls.enabled is true")
		}
		if c.Server.TLS.KeyFile == "" {
			v.Add("server.tls.keyFile required when tls.enabled is true")
		}
		if c.Server.TLS.CertFile != "" {
			if err := requireFile(c.resolvePath(c.Server.TLS.CertFile)); err != nil {
				v.Add("server.tls.certFile invalid: %v", err)
			}
		}
		if c.Server.TLS.KeyFile != "" {
			if err := requireFile(c.resolvePath(c.Server.TLS.KeyFile)); err != nil {
				v.Add("server.tls.keyFile invalid: %v", err)
			}
		}
	}

	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RPS <= 0 {
			v.Add("server.rateLimit.rps must be > 0")
		}
		if c.Server.RateLimit.Burst <= 0 {
			v.Add("server.rateLimit.burst must be > 0")
		}
	}

	if c.Metrics.Enabled {
		if err := validateListen(c.Metrics.Listen); err != nil {
			v.Add("metrics.listen invalid: %v", err)
		}
	}

	if c.Logging.EventLog != "" {
		if err := ensureWritable(c.resolvePath(c.Logging.EventLog)); err != nil {
			v.Add("logging.eventLog invalid: %v", err)
		}
	}

	dialectNames := map[string]struct{}{}
	for name := range c.Dialects {
		if name == "" {
			v.Add("dialects has an empty name")
			continue
		}
		dialectNames[name] = struct{}{}
	}

	suiteNames := map[string]struct{}{}
	for i, suite := range c.VectorSuites {
		if suite.Name == "" {
			v.Add("vectorSuites[%d].name is required", i)
		} else if _, exists := suiteNames[suite.Name]; exists {
			v.Add("vectorSuites[%d].name %q is duplicated", i, suite.Name)
		} else {
			suiteNames[suite.Name] = struct{}{}
		}

		if suite.Dialect == "" {
			v.Add("vectorSuites[%d].dialect is required", i)
		} else if _, exists := dialectNames[suite.Dialect]; !exists {
			v.Add("vectorSuites[%d].dialect %q does not exist", i, suite.Dialect)
		}

		if suite.FixturePath == "" {
			v.Add("vectorSuites[%d].fixturePath is required", i)
		} else if err := requireFile(c.resolvePath(suite.FixturePath)); err != nil {
			v.Add("vectorSuites[%d].fixturePath invalid: %v", i, err)
		}
	}

	if len(v.Problems) > 0 {
		sort.Strings(v.Problems)
		return v
	}
	return nil
}

func validateListen(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return errors.New("address is required")
	}
	if _, err := net.ResolveTCPAddr("tcp", addr); err != nil {
		return err
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func ensureWritable(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	file, err := os.CreateTemp(dir, "pathnorm-validate-*")
	if err != nil {
		return err
	}
	name := file.Name()
	if err := file.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
