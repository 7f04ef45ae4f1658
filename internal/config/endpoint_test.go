package config

import (
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestResolveEndpoint(t *testing.T) {
	cfg := &Config{
		DefaultServer: "home",
		Servers: map[string]ServerConfig{
			"home": {APIURL: "http://home.local:5000/", Token: "home-token"},
			"club": {APIURL: "https://parts.example.org", TokenEnv: "CLUB_TOKEN"},
		},
	}

	tests := []struct {
		name       string
		cfg        *Config
		ov         Overrides
		env        map[string]string
		wantURL    string
		wantSource Source
		wantToken  string
		wantServer string
		wantErr    bool
	}{
		{
			name:       "nothing configured",
			cfg:        &Config{},
			wantURL:    DefaultAPIURL,
			wantSource: SourceDefault,
		},
		{
			name:       "default server",
			cfg:        cfg,
			wantURL:    "http://home.local:5000",
			wantSource: SourceServer,
			wantToken:  "home-token",
			wantServer: "home",
		},
		{
			name:       "active server beats default",
			cfg:        cfg,
			ov:         Overrides{ActiveServer: "club"},
			env:        map[string]string{"CLUB_TOKEN": "club-token"},
			wantURL:    "https://parts.example.org",
			wantSource: SourceServer,
			wantToken:  "club-token",
			wantServer: "club",
		},
		{
			name:       "stale active server falls back to default",
			cfg:        cfg,
			ov:         Overrides{ActiveServer: "gone"},
			wantURL:    "http://home.local:5000",
			wantSource: SourceServer,
			wantToken:  "home-token",
			wantServer: "home",
		},
		{
			name:       "named server beats active",
			cfg:        cfg,
			ov:         Overrides{Server: "home", ActiveServer: "club"},
			wantURL:    "http://home.local:5000",
			wantSource: SourceServer,
			wantToken:  "home-token",
			wantServer: "home",
		},
		{
			name:    "unknown named server",
			cfg:     cfg,
			ov:      Overrides{Server: "nope"},
			wantErr: true,
		},
		{
			name:       "env beats server",
			cfg:        cfg,
			env:        map[string]string{EnvAPIURL: "http://env:1", EnvToken: "env-token"},
			wantURL:    "http://env:1",
			wantSource: SourceEnv,
			wantToken:  "env-token",
			wantServer: "home",
		},
		{
			name:       "flags beat env",
			cfg:        cfg,
			ov:         Overrides{APIURL: "http://flag:2/", Token: "flag-token"},
			env:        map[string]string{EnvAPIURL: "http://env:1", EnvToken: "env-token"},
			wantURL:    "http://flag:2",
			wantSource: SourceFlag,
			wantToken:  "flag-token",
			wantServer: "home",
		},
		{
			name:    "invalid url",
			cfg:     &Config{},
			ov:      Overrides{APIURL: "localhost:5000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := ResolveEndpoint(tt.cfg, tt.ov, envMap(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveEndpoint() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if ep.APIURL != tt.wantURL {
				t.Errorf("APIURL = %q, want %q", ep.APIURL, tt.wantURL)
			}
			if ep.URLSource != tt.wantSource {
				t.Errorf("URLSource = %q, want %q", ep.URLSource, tt.wantSource)
			}
			if ep.Token != tt.wantToken {
				t.Errorf("Token = %q, want %q", ep.Token, tt.wantToken)
			}
			if ep.HasToken != (tt.wantToken != "") {
				t.Errorf("HasToken = %v", ep.HasToken)
			}
			if ep.Server != tt.wantServer {
				t.Errorf("Server = %q, want %q", ep.Server, tt.wantServer)
			}
		})
	}
}

func TestNormalizeAPIURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:5000", want: "http://localhost:5000"},
		{in: " https://host/hpt/// ", want: "https://host/hpt"},
		{in: "ftp://host", wantErr: true},
		{in: "http://", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeAPIURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeAPIURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("NormalizeAPIURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}

	path := filepath.Join(dir, ".env")
	content := "HPT_TEST_DOTENV_NEW=from-file\nHPT_TEST_DOTENV_SET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HPT_TEST_DOTENV_SET", "from-shell")
	t.Setenv("HPT_TEST_DOTENV_NEW", "")
	os.Unsetenv("HPT_TEST_DOTENV_NEW")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("HPT_TEST_DOTENV_NEW"); got != "from-file" {
		t.Errorf("new variable = %q, want from-file", got)
	}
	if got := os.Getenv("HPT_TEST_DOTENV_SET"); got != "from-shell" {
		t.Errorf("existing variable = %q, want from-shell", got)
	}
}
