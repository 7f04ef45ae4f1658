// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/config"
	"github.com/hobbyparts/hpt/internal/logging"
	"github.com/hobbyparts/hpt/internal/ui"
)

var (
	// Global flags
	serverName    string // Named server from config
	apiURLFlag    string // Explicit backend URL
	tokenFlag     string
	configPath    string
	statePathFlag string
	verbose       bool
	timeoutFlag   time.Duration

	// Resolved values
	resolvedConfigPath string
	resolvedStatePath  string
	cfg                *config.Config
	endpoint           *config.Endpoint
	logger             = logging.Nop()

	// pendingWarnings are collected before the command runs and attached to
	// its JSON response.
	pendingWarnings []Warning
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hpt",
	Short: "hpt - Hobby Part Tracker in the terminal",
	Long: `hpt is a terminal client for a Hobby Part Tracker backend.

It shows where every part lives, which parts are not stored anywhere yet,
and how much weight and value sits in each location and container.`,
	// Failures are mostly backend or config problems; usage would bury them.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, verbose)

		// Commands that manage local files or print static info need no backend.
		switch cmd.Name() {
		case "config", "server", "completion", "help", "version", "docs", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return nil
		}
		if p := cmd.Parent(); p != nil {
			switch p.Name() {
			case "config", "server", "completion":
				return nil
			}
		}

		if err := config.LoadDotEnv(""); err != nil {
			logger.Warn().Err(err).Msg("ignoring .env")
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return handlePreRunError(cmd, ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "Run 'hpt config show' to inspect it")
		}
		resolvedStatePath = config.ResolveStatePath(statePathFlag, resolvedConfigPath, cfg)
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		state, err := config.LoadState(resolvedStatePath)
		if err != nil {
			return handlePreRunError(cmd, ErrConfigInvalid, fmt.Errorf("failed to load state: %w", err), "")
		}

		pendingWarnings = nil
		active := strings.TrimSpace(state.ActiveServer)
		if _, ok := cfg.Servers[active]; active != "" && !ok {
			msg := fmt.Sprintf("active server '%s' not found in config, falling back to default", active)
			pendingWarnings = append(pendingWarnings, Warning{Code: WarnActiveServerMissing, Message: msg, Ref: active})
			if !jsonOutput {
				fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			}
		}

		endpoint, err = config.ResolveEndpoint(cfg, config.Overrides{
			Server:       serverName,
			APIURL:       apiURLFlag,
			Token:        tokenFlag,
			ActiveServer: active,
		}, os.Getenv)
		if err != nil {
			return handlePreRunError(cmd, ErrServerNotFound, err, "Run 'hpt server list' to see configured servers")
		}

		logger.Debug().
			Str("api_url", endpoint.APIURL).
			Str("source", string(endpoint.URLSource)).
			Str("server", endpoint.Server).
			Bool("token", endpoint.HasToken).
			Msg("resolved backend")
		return nil
	},
}

// Execute runs the CLI. ctx is canceled on interrupt, which aborts in-flight requests.
func Execute(ctx context.Context) error {
	jsonFailureWritten = false
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return err
	}
	if jsonFailureWritten {
		return errAlreadyReported
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverName, "server", "s", "", "Named server from config")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Backend URL (overrides $"+config.EnvAPIURL+" and config)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Bearer token (overrides $"+config.EnvToken+" and config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&statePathFlag, "state", "", "Path to state file (overrides state_file in config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Log backend requests to stderr")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Per-request timeout (default from config, else 30s)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getEndpoint returns the resolved backend, or the built-in default when
// resolution has not run.
func getEndpoint() *config.Endpoint {
	if endpoint == nil {
		return &config.Endpoint{APIURL: config.DefaultAPIURL, URLSource: config.SourceDefault}
	}
	return endpoint
}

// getLogger returns the diagnostic logger.
func getLogger() *zerolog.Logger {
	return &logger
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	loadedCfg, resolvedPath, _, err := loadGlobalConfigAllowMissingWithPath()
	return loadedCfg, resolvedPath, err
}

// loadGlobalConfigAllowMissingWithPath loads config.toml, returning an empty
// config when the file does not exist.
func loadGlobalConfigAllowMissingWithPath() (*config.Config, string, bool, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	if _, err := os.Stat(resolvedPath); os.IsNotExist(err) {
		return &config.Config{}, resolvedPath, false, nil
	} else if err != nil {
		return nil, "", false, err
	}

	loadedCfg, err := config.LoadFrom(resolvedPath)
	if err != nil {
		return nil, "", false, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, resolvedPath, true, nil
}
