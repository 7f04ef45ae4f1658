package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hobbyparts/hpt/internal/config"
)

func TestServerRows(t *testing.T) {
	cfg := &config.Config{
		DefaultServer: "garage",
		Servers: map[string]config.ServerConfig{
			"garage":   {APIURL: "http://garage.local:5000", TokenEnv: "GARAGE_TOKEN"},
			"workshop": {APIURL: "http://workshop.local:5000"},
		},
	}
	state := &config.State{ActiveServer: "workshop"}

	rows, defaultName, activeName, activeMissing := serverRows(cfg, state)
	want := []serverRow{
		{Name: "garage", APIURL: "http://garage.local:5000", TokenEnv: "GARAGE_TOKEN", HasToken: true, IsDefault: true},
		{Name: "workshop", APIURL: "http://workshop.local:5000", IsActive: true},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if defaultName != "garage" {
		t.Fatalf("defaultName = %q, want garage", defaultName)
	}
	if activeName != "workshop" {
		t.Fatalf("activeName = %q, want workshop", activeName)
	}
	if activeMissing {
		t.Fatalf("expected active_missing=false")
	}

	_, _, _, activeMissing = serverRows(cfg, &config.State{ActiveServer: "attic"})
	if !activeMissing {
		t.Fatalf("expected active_missing=true for an unconfigured active server")
	}
}

func useServerGlobals(t *testing.T) {
	t.Helper()
	prevServer, prevURL, prevToken := serverName, apiURLFlag, tokenFlag
	t.Cleanup(func() {
		serverName, apiURLFlag, tokenFlag = prevServer, prevURL, prevToken
	})
	serverName, apiURLFlag, tokenFlag = "", "", ""
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvToken, "")
}

func TestResolveCurrentServer(t *testing.T) {
	cfg := &config.Config{
		DefaultServer: "garage",
		Servers: map[string]config.ServerConfig{
			"garage":   {APIURL: "http://garage.local:5000"},
			"workshop": {APIURL: "http://workshop.local:5000/"},
		},
	}

	tests := []struct {
		name        string
		cfg         *config.Config
		active      string
		flag        string
		wantName    string
		wantURL     string
		wantSource  string
		wantMissing bool
	}{
		{
			name:       "prefers active server",
			cfg:        cfg,
			active:     "workshop",
			wantName:   "workshop",
			wantURL:    "http://workshop.local:5000",
			wantSource: "active_server",
		},
		{
			name:        "falls back to default when active missing",
			cfg:         cfg,
			active:      "attic",
			wantName:    "garage",
			wantURL:     "http://garage.local:5000",
			wantSource:  "default_server_fallback",
			wantMissing: true,
		},
		{
			name:       "flag wins over active",
			cfg:        cfg,
			active:     "workshop",
			flag:       "garage",
			wantName:   "garage",
			wantURL:    "http://garage.local:5000",
			wantSource: "flag",
		},
		{
			name:       "default server",
			cfg:        cfg,
			wantName:   "garage",
			wantURL:    "http://garage.local:5000",
			wantSource: "default_server",
		},
		{
			name:       "nothing configured",
			cfg:        &config.Config{},
			wantURL:    config.DefaultAPIURL,
			wantSource: "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useServerGlobals(t)
			serverName = tt.flag

			got, err := resolveCurrentServer(&serverContext{cfg: tt.cfg, state: &config.State{ActiveServer: tt.active}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.wantName {
				t.Fatalf("name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Endpoint.APIURL != tt.wantURL {
				t.Fatalf("api_url = %q, want %q", got.Endpoint.APIURL, tt.wantURL)
			}
			if got.Source != tt.wantSource {
				t.Fatalf("source = %q, want %q", got.Source, tt.wantSource)
			}
			if got.ActiveMissing != tt.wantMissing {
				t.Fatalf("active_missing = %v, want %v", got.ActiveMissing, tt.wantMissing)
			}
		})
	}

	t.Run("unknown flag server", func(t *testing.T) {
		useServerGlobals(t)
		serverName = "attic"
		if _, err := resolveCurrentServer(&serverContext{cfg: cfg, state: &config.State{}}); err == nil {
			t.Fatalf("expected an error for an unconfigured --server")
		}
	})
}

// useServerFiles points the config and state flags at a temp dir and
// resets the server command flags.
func useServerFiles(t *testing.T, cfg *config.Config) (string, string) {
	t.Helper()
	useServerGlobals(t)

	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	statePath := filepath.Join(tmp, "state.toml")
	if cfg != nil {
		if err := config.SaveTo(cfgPath, cfg); err != nil {
			t.Fatalf("SaveTo: %v", err)
		}
	}

	prevConfig, prevState, prevJSON := configPath, statePathFlag, jsonOutput
	reset := func() {
		serverAddReplace = false
		serverAddPin = false
		serverAddToken = ""
		serverAddTokenEnv = ""
		serverRemoveClearDefault = false
		serverRemoveClearActive = false
	}
	reset()
	t.Cleanup(func() {
		configPath, statePathFlag, jsonOutput = prevConfig, prevState, prevJSON
		reset()
	})

	configPath = cfgPath
	statePathFlag = statePath
	jsonOutput = true
	return cfgPath, statePath
}

func TestServerUseWritesState(t *testing.T) {
	_, statePath := useServerFiles(t, &config.Config{
		Servers: map[string]config.ServerConfig{"garage": {APIURL: "http://garage.local:5000"}},
	})

	out := captureStdout(t, func() {
		if err := serverUseCmd.RunE(serverUseCmd, []string{"garage"}); err != nil {
			t.Fatalf("serverUseCmd.RunE: %v", err)
		}
	})
	if env := decodeEnvelope(t, out, nil); !env.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}

	state, err := config.LoadState(statePath)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.ActiveServer != "garage" {
		t.Fatalf("active_server = %q, want garage", state.ActiveServer)
	}

	out = captureStdout(t, func() {
		if err := serverUseCmd.RunE(serverUseCmd, []string{"attic"}); err != nil {
			t.Fatalf("serverUseCmd.RunE: %v", err)
		}
	})
	env := decodeEnvelope(t, out, nil)
	if env.OK || env.Error == nil || env.Error.Code != ErrServerNotFound {
		t.Fatalf("expected %s; out=%s", ErrServerNotFound, out)
	}
}

func TestServerAddAndReplace(t *testing.T) {
	cfgPath, _ := useServerFiles(t, nil)

	serverAddPin = true
	serverAddTokenEnv = "GARAGE_TOKEN"
	out := captureStdout(t, func() {
		if err := serverAddCmd.RunE(serverAddCmd, []string{"garage", "http://garage.local:5000/"}); err != nil {
			t.Fatalf("serverAddCmd.RunE: %v", err)
		}
	})
	if env := decodeEnvelope(t, out, nil); !env.OK {
		t.Fatalf("expected ok=true; out=%s", out)
	}

	loaded, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.DefaultServer != "garage" {
		t.Fatalf("default_server = %q, want garage", loaded.DefaultServer)
	}
	want := config.ServerConfig{APIURL: "http://garage.local:5000", TokenEnv: "GARAGE_TOKEN"}
	if diff := cmp.Diff(want, loaded.Servers["garage"]); diff != "" {
		t.Fatalf("server mismatch (-want +got):\n%s", diff)
	}

	serverAddPin = false
	serverAddTokenEnv = ""
	out = captureStdout(t, func() {
		if err := serverAddCmd.RunE(serverAddCmd, []string{"garage", "http://other.local:5000"}); err != nil {
			t.Fatalf("serverAddCmd.RunE: %v", err)
		}
	})
	env := decodeEnvelope(t, out, nil)
	if env.OK || env.Error == nil || env.Error.Code != ErrDuplicateName {
		t.Fatalf("expected %s; out=%s", ErrDuplicateName, out)
	}

	serverAddReplace = true
	_ = captureStdout(t, func() {
		if err := serverAddCmd.RunE(serverAddCmd, []string{"garage", "http://other.local:5000"}); err != nil {
			t.Fatalf("serverAddCmd.RunE: %v", err)
		}
	})
	loaded, err = config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got := loaded.Servers["garage"].APIURL; got != "http://other.local:5000" {
		t.Fatalf("api_url = %q, want http://other.local:5000", got)
	}
}

func TestServerAddRejectsBadURL(t *testing.T) {
	cfgPath, _ := useServerFiles(t, nil)

	out := captureStdout(t, func() {
		if err := serverAddCmd.RunE(serverAddCmd, []string{"garage", "garage.local:5000"}); err != nil {
			t.Fatalf("serverAddCmd.RunE: %v", err)
		}
	})
	env := decodeEnvelope(t, out, nil)
	if env.OK || env.Error == nil || env.Error.Code != ErrInvalidInput {
		t.Fatalf("expected %s; out=%s", ErrInvalidInput, out)
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Fatalf("config should not be written for a bad URL")
	}
}

func TestServerRemoveRequiresClearFlags(t *testing.T) {
	cfgPath, statePath := useServerFiles(t, &config.Config{
		DefaultServer: "garage",
		Servers: map[string]config.ServerConfig{
			"garage":   {APIURL: "http://garage.local:5000"},
			"workshop": {APIURL: "http://workshop.local:5000"},
		},
	})
	if err := config.SaveState(statePath, &config.State{Version: 1, ActiveServer: "workshop"}); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	for _, name := range []string{"garage", "workshop"} {
		out := captureStdout(t, func() {
			if err := serverRemoveCmd.RunE(serverRemoveCmd, []string{name}); err != nil {
				t.Fatalf("serverRemoveCmd.RunE: %v", err)
			}
		})
		env := decodeEnvelope(t, out, nil)
		if env.OK || env.Error == nil || env.Error.Code != ErrConfirmRequired {
			t.Fatalf("removing %s: expected %s; out=%s", name, ErrConfirmRequired, out)
		}
	}

	serverRemoveClearDefault = true
	serverRemoveClearActive = true
	for _, name := range []string{"garage", "workshop"} {
		out := captureStdout(t, func() {
			if err := serverRemoveCmd.RunE(serverRemoveCmd, []string{name}); err != nil {
				t.Fatalf("serverRemoveCmd.RunE: %v", err)
			}
		})
		if env := decodeEnvelope(t, out, nil); !env.OK {
			t.Fatalf("removing %s: expected ok=true; out=%s", name, out)
		}
	}

	loaded, err := config.LoadFrom(cfgPath)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.DefaultServer != "" || len(loaded.Servers) != 0 {
		t.Fatalf("expected an empty config, got %+v", loaded)
	}
	state, err := config.LoadState(statePath)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if state.ActiveServer != "" {
		t.Fatalf("active_server = %q, want empty", state.ActiveServer)
	}
}

func TestServerListText(t *testing.T) {
	useServerFiles(t, &config.Config{
		DefaultServer: "garage",
		Servers:       map[string]config.ServerConfig{"garage": {APIURL: "http://garage.local:5000"}},
	})
	jsonOutput = false

	out := captureStdout(t, func() {
		if err := serverListCmd.RunE(serverListCmd, nil); err != nil {
			t.Fatalf("serverListCmd.RunE: %v", err)
		}
	})
	if !strings.Contains(out, " * garage") || !strings.Contains(out, "http://garage.local:5000") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}
