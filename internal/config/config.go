// Package config handles global hpt configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/hobbyparts/hpt/internal/atomicfile"
)

// Config represents the global hpt configuration.
type Config struct {
	// DefaultServer is the name of the default server (from Servers map).
	DefaultServer string `toml:"default_server"`

	// Servers maps server names to backend connection settings.
	Servers map[string]ServerConfig `toml:"servers"`

	// StateFile overrides where state.toml lives. Relative paths are resolved
	// against the config file's directory.
	StateFile string `toml:"state_file"`

	// Timeout bounds each backend request, as a Go duration string ("30s").
	Timeout string `toml:"timeout"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// ServerConfig describes one Hobby Part Tracker backend.
type ServerConfig struct {
	// APIURL is the backend root, e.g. "http://localhost:5000".
	APIURL string `toml:"api_url"`

	// Token is sent as a bearer token. Prefer TokenEnv to keep secrets out of the file.
	Token string `toml:"token"`

	// TokenEnv names an environment variable holding the token.
	TokenEnv string `toml:"token_env"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent colors headings and highlights. A color name, an ANSI code
	// ("0" to "255") or a hex color.
	Accent string `toml:"accent,omitempty"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	CodeTheme string `toml:"code_theme,omitempty"`
}

// GetServer returns the settings for a named server.
// If name is empty, returns the default server.
func (c *Config) GetServer(name string) (ServerConfig, error) {
	if name == "" {
		name = c.DefaultServer
	}
	if name == "" {
		return ServerConfig{}, fmt.Errorf("no default server configured")
	}
	if server, ok := c.Servers[name]; ok {
		return server, nil
	}
	return ServerConfig{}, fmt.Errorf("server '%s' not found in config", name)
}

// ServerNames returns the configured server names in sorted order.
func (c *Config) ServerNames() []string {
	names := make([]string, 0, len(c.Servers))
	for name := range c.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequestTimeout parses Timeout. Zero means "use the client default".
func (c *Config) RequestTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", raw)
	}
	return d, nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/hpt/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "hpt", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "hpt", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

const defaultConfigTemplate = `# hpt configuration

# Default server name (must exist under [servers] below)
# default_server = "home"

# Per-request timeout (Go duration)
# timeout = "30s"

# Named backends
# [servers.home]
# api_url = "http://localhost:5000"
# token_env = "HPT_TOKEN"
#
# [servers.club]
# api_url = "https://parts.example.org"
# token = "..."

# Optional UI accent color for headers in terminal output.
# Accepts a name (purple, blue, cyan, green, yellow, orange, red, pink),
# hex (#RRGGBB) or an ANSI color code (0-255).
# [ui]
# accent = "orange"
# code_theme = "monokai"
`

// CreateDefault creates a default config file at the default path if it
// doesn't exist.
func CreateDefault() (string, error) {
	return CreateDefaultAt(DefaultPath())
}

// CreateDefaultAt creates a commented default config at path. An existing
// file is left untouched.
func CreateDefaultAt(path string) (string, error) {
	err := atomicfile.WriteFileWith(path, []byte(defaultConfigTemplate), atomicfile.Options{
		Perm:      0o600,
		MkdirAll:  true,
		NoClobber: true,
	})
	if err != nil && !errors.Is(err, atomicfile.ErrExists) {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
