// Package config loads service configuration from built-in defaults
// overridden by HUFFZIP_-prefixed environment variables.
package config

import (
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config wraps a koanf instance with default-aware accessors.
type Config struct {
	*koanf.Koanf
}

var defaults = map[string]interface{}{
	"server.port":          "8080",
	"server.environment":   "development",
	"server.max_file_size": int64(50 * 1024 * 1024),
	"logger.level":         "info",
	"logger.prettier":      true,
}

// envAliases maps the generic underscore-to-dot translation back onto
// keys that keep an underscore inside a segment, so variables like
// HUFFZIP_SERVER_MAX_FILE_SIZE still reach their key.
var envAliases = map[string]string{
	"server.max.file.size": "server.max_file_size",
}

// Load builds the configuration: defaults first, then environment
// variables (HUFFZIP_SERVER_PORT maps to server.port).
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("HUFFZIP_", ".", envKey), nil); err != nil {
		return nil, err
	}
	return &Config{Koanf: k}, nil
}

func envKey(s string) string {
	key := strings.Replace(strings.ToLower(strings.TrimPrefix(s, "HUFFZIP_")), "_", ".", -1)
	if alias, ok := envAliases[key]; ok {
		return alias
	}
	return key
}

// FromMap builds a configuration from explicit values; missing keys
// fall back to accessor defaults. Intended for tests.
func FromMap(values map[string]interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, err
	}
	return &Config{Koanf: k}, nil
}

func (c *Config) String(path string, defaultValues ...string) string {
	if !c.Koanf.Exists(path) && len(defaultValues) > 0 {
		return defaultValues[0]
	}
	return c.Koanf.String(path)
}

func (c *Config) Bool(path string, defaultValues ...bool) bool {
	if !c.Koanf.Exists(path) && len(defaultValues) > 0 {
		return defaultValues[0]
	}
	return c.Koanf.Bool(path)
}

func (c *Config) Int64(path string, defaultValues ...int64) int64 {
	if !c.Koanf.Exists(path) && len(defaultValues) > 0 {
		return defaultValues[0]
	}
	return c.Koanf.Int64(path)
}
