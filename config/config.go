// Package config loads the optional mime2lynx TOML configuration
// file. Every key can be scoped per machine or per platform by
// nesting it under host.<hostname> or os.<goos>; the most specific
// scope wins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the parsed configuration file. The zero-value-equivalent
// returned for a missing file answers every accessor with nothing.
type Config struct {
	k *koanf.Koanf
}

// DefaultPath is where the configuration file lives unless the user
// points elsewhere.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "mime2lynx", "mime2lynx.toml")
}

// Load reads the TOML file at path. A missing file is not an error;
// the tool works without configuration.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Config{k: k}, nil
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &Config{k: k}, nil
}

// Inputs returns the configured default input files.
func (c *Config) Inputs() []string { return c.strings("input") }

// Prefer returns preference directives to apply before any given on
// the command line.
func (c *Config) Prefer() []string { return c.strings("prefer") }

// Logfile returns the log destination, empty for stderr only.
func (c *Config) Logfile() string {
	if key, ok := c.key("logfile"); ok {
		return c.k.String(key)
	}
	return ""
}

// Exec returns the configured application-to-command override table.
func (c *Config) Exec() map[string]string {
	if key, ok := c.key("exec"); ok {
		return c.k.StringMap(key)
	}
	return nil
}

func (c *Config) strings(name string) []string {
	if key, ok := c.key(name); ok {
		return c.k.Strings(key)
	}
	return nil
}

// key resolves a name against the host, os, and top-level scopes, in
// that order.
func (c *Config) key(name string) (string, bool) {
	if host := hostname(); host != "" {
		hostKey := "host." + host + "." + name
		if c.k.Exists(hostKey) {
			return hostKey, true
		}
	}
	osKey := "os." + platform() + "." + name
	if c.k.Exists(osKey) {
		return osKey, true
	}
	if c.k.Exists(name) {
		return name, true
	}
	return "", false
}

func platform() string { return strings.ToLower(runtime.GOOS) }

func hostname() string {
	host, err := os.Hostname()
	if err != nil {
		return ""
	}
	return strings.ToLower(host)
}
