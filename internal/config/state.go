package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hobbyparts/hpt/internal/atomicfile"
)

// StateVersion is the newest state.toml layout this build understands.
const StateVersion = 1

const stateFileName = "state.toml"

// State is what hpt remembers between runs on this machine, kept apart from
// the hand-edited config.
type State struct {
	Version      int    `toml:"version"`
	ActiveServer string `toml:"active_server,omitempty"`
}

func (s State) normalized() State {
	if s.Version == 0 {
		s.Version = StateVersion
	}
	s.ActiveServer = strings.TrimSpace(s.ActiveServer)
	return s
}

// ResolveConfigPath returns override when set, else DefaultPath.
func ResolveConfigPath(override string) string {
	if strings.TrimSpace(override) == "" {
		return DefaultPath()
	}
	return override
}

// ResolveStatePath picks the state file: the --state override, then
// state_file from config (relative paths are under the config directory),
// then state.toml beside the config file.
func ResolveStatePath(override, configPath string, cfg *Config) string {
	if strings.TrimSpace(override) != "" {
		return override
	}

	dir := filepath.Dir(ResolveConfigPath(configPath))
	var configured string
	if cfg != nil {
		configured = strings.TrimSpace(cfg.StateFile)
	}
	switch {
	case configured == "":
		return filepath.Join(dir, stateFileName)
	case filepath.IsAbs(configured) || strings.HasPrefix(filepath.ToSlash(configured), "/"):
		// "/..." counts as absolute on every OS so configs can be shared.
		return filepath.Clean(filepath.FromSlash(configured))
	default:
		return filepath.Join(dir, filepath.FromSlash(configured))
	}
}

// LoadState reads the state file. A missing file is an empty state; a file
// written by a newer hpt is an error so it is not silently overwritten.
func LoadState(path string) (*State, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("state path is required")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &State{Version: StateVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}

	var st State
	if _, err := toml.Decode(string(data), &st); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", path, err)
	}
	if st.Version > StateVersion {
		return nil, fmt.Errorf("state %s has version %d; this hpt understands up to %d", path, st.Version, StateVersion)
	}

	st = st.normalized()
	return &st, nil
}

// SaveState replaces the state file atomically, creating its directory.
func SaveState(path string, st *State) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("state path is required")
	}
	var out State
	if st != nil {
		out = *st
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out.normalized()); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := atomicfile.WriteFileWith(path, buf.Bytes(), atomicfile.Options{Perm: 0o644, MkdirAll: true}); err != nil {
		return fmt.Errorf("write state %s: %w", path, err)
	}
	return nil
}
