package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is used when nothing else names a backend.
	DefaultAPIURL = "http://localhost:5000"

	// EnvAPIURL overrides the backend URL.
	EnvAPIURL = "HPT_API_URL"
	// EnvToken overrides the bearer token.
	EnvToken = "HPT_TOKEN"
)

// Source says where a resolved value came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceServer  Source = "server"
	SourceDefault Source = "default"
)

// Overrides are the per-invocation inputs to endpoint resolution.
type Overrides struct {
	// Server is the --server flag.
	Server string
	// APIURL and Token are the --api-url and --token flags.
	APIURL string
	Token  string
	// ActiveServer comes from state.toml.
	ActiveServer string
}

// Endpoint is the backend a command talks to.
type Endpoint struct {
	// Server is the configured server name used, if any.
	Server    string `json:"server,omitempty"`
	APIURL    string `json:"api_url"`
	URLSource Source `json:"api_url_source"`
	Token     string `json:"-"`
	HasToken  bool   `json:"has_token"`
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ResolveEndpoint picks the backend URL and token.
//
// The URL comes from, in order: the --api-url flag, $HPT_API_URL, the server
// named by --server, the active server from state, the default server, and
// finally DefaultAPIURL. The token follows the same order, with a server's
// inline token preferred over its token_env variable.
//
// getenv is usually os.Getenv.
func ResolveEndpoint(cfg *Config, ov Overrides, getenv func(string) string) (*Endpoint, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	ep := &Endpoint{}

	serverName, explicit := pickServerName(cfg, ov)
	var server *ServerConfig
	if serverName != "" {
		if s, ok := cfg.Servers[serverName]; ok {
			server = &s
			ep.Server = serverName
		} else if explicit {
			return nil, fmt.Errorf("server '%s' not found in config", serverName)
		}
	}

	switch {
	case strings.TrimSpace(ov.APIURL) != "":
		ep.APIURL, ep.URLSource = ov.APIURL, SourceFlag
	case strings.TrimSpace(getenv(EnvAPIURL)) != "":
		ep.APIURL, ep.URLSource = getenv(EnvAPIURL), SourceEnv
	case server != nil && strings.TrimSpace(server.APIURL) != "":
		ep.APIURL, ep.URLSource = server.APIURL, SourceServer
	default:
		ep.APIURL, ep.URLSource = DefaultAPIURL, SourceDefault
	}

	normalized, err := NormalizeAPIURL(ep.APIURL)
	if err != nil {
		return nil, err
	}
	ep.APIURL = normalized

	switch {
	case strings.TrimSpace(ov.Token) != "":
		ep.Token = strings.TrimSpace(ov.Token)
	case strings.TrimSpace(getenv(EnvToken)) != "":
		ep.Token = strings.TrimSpace(getenv(EnvToken))
	case server != nil && strings.TrimSpace(server.Token) != "":
		ep.Token = strings.TrimSpace(server.Token)
	case server != nil && strings.TrimSpace(server.TokenEnv) != "":
		ep.Token = strings.TrimSpace(getenv(server.TokenEnv))
	}
	ep.HasToken = ep.Token != ""

	return ep, nil
}

// pickServerName returns the server to use and whether the user named it
// explicitly with --server. A stale active server falls through to the
// default server.
func pickServerName(cfg *Config, ov Overrides) (string, bool) {
	if name := strings.TrimSpace(ov.Server); name != "" {
		return name, true
	}
	if name := strings.TrimSpace(ov.ActiveServer); name != "" {
		if _, ok := cfg.Servers[name]; ok {
			return name, false
		}
	}
	return strings.TrimSpace(cfg.DefaultServer), false
}

// NormalizeAPIURL validates an http(s) URL and strips trailing slashes.
func NormalizeAPIURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid api url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid api url %q: missing host", raw)
	}
	return strings.TrimRight(trimmed, "/"), nil
}
