package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hobbyparts/hpt/internal/atomicfile"
)

// fileConfig is the on-disk shape. Blank values are dropped so a saved
// file only carries what the user set.
type fileConfig struct {
	DefaultServer string                `toml:"default_server,omitempty"`
	StateFile     string                `toml:"state_file,omitempty"`
	Timeout       string                `toml:"timeout,omitempty"`
	Servers       map[string]fileServer `toml:"servers,omitempty"`
	UI            *UIConfig             `toml:"ui,omitempty"`
}

type fileServer struct {
	APIURL   string `toml:"api_url,omitempty"`
	Token    string `toml:"token,omitempty"`
	TokenEnv string `toml:"token_env,omitempty"`
}

func toFile(cfg *Config) fileConfig {
	trim := strings.TrimSpace
	out := fileConfig{
		DefaultServer: trim(cfg.DefaultServer),
		StateFile:     trim(cfg.StateFile),
		Timeout:       trim(cfg.Timeout),
	}
	for name, s := range cfg.Servers {
		if out.Servers == nil {
			out.Servers = make(map[string]fileServer, len(cfg.Servers))
		}
		out.Servers[name] = fileServer{APIURL: trim(s.APIURL), Token: trim(s.Token), TokenEnv: trim(s.TokenEnv)}
	}
	if ui := (UIConfig{Accent: trim(cfg.UI.Accent), CodeTheme: trim(cfg.UI.CodeTheme)}); ui != (UIConfig{}) {
		out.UI = &ui
	}
	return out
}

// SaveTo replaces the config file at path. Tokens may live in it, so the
// file is written with mode 0600.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toFile(cfg)); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := atomicfile.WriteFileWith(path, buf.Bytes(), atomicfile.Options{Perm: 0o600, MkdirAll: true}); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
