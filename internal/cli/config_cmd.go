package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/config"
	"github.com/hobbyparts/hpt/internal/ui"
)

// globalConfigContext is config.toml as found on disk, plus where the state
// file for it lives.
type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	statePath    string
	configExists bool
}

var (
	configSetDefaultServer string
	configSetTimeout       string
	configSetStateFile     string
	configSetUIAccent      string
	configSetUICodeTheme   string

	configUnsetDefaultServer bool
	configUnsetTimeout       bool
	configUnsetStateFile     bool
	configUnsetUIAccent      bool
	configUnsetUICodeTheme   bool
)

// configField is one scalar setting editable through 'config set/unset'.
type configField struct {
	key   string // config.toml key, dotted for tables
	flag  string
	usage string

	setValue *string
	unset    *bool

	field    func(*config.Config) *string
	validate func(cfg *config.Config, value string) (msg, suggestion string)
}

var configFields = []configField{
	{
		key:      "default_server",
		flag:     "default-server",
		usage:    "a configured server name",
		setValue: &configSetDefaultServer,
		unset:    &configUnsetDefaultServer,
		field:    func(c *config.Config) *string { return &c.DefaultServer },
		validate: func(c *config.Config, v string) (string, string) {
			if _, err := c.GetServer(v); err != nil {
				return fmt.Sprintf("default-server '%s' is not configured", v), "Run 'hpt server list' to see configured servers"
			}
			return "", ""
		},
	},
	{
		key:      "timeout",
		flag:     "request-timeout",
		usage:    "the per-request timeout (e.g. 30s)",
		setValue: &configSetTimeout,
		unset:    &configUnsetTimeout,
		field:    func(c *config.Config) *string { return &c.Timeout },
		validate: func(_ *config.Config, v string) (string, string) {
			probe := config.Config{Timeout: v}
			if d, err := probe.RequestTimeout(); err != nil || d <= 0 {
				return fmt.Sprintf("timeout must be a positive duration such as 30s, got %q", v), ""
			}
			return "", ""
		},
	},
	{
		key:      "state_file",
		flag:     "state-file",
		usage:    "the state.toml path (absolute or relative to the config directory)",
		setValue: &configSetStateFile,
		unset:    &configUnsetStateFile,
		field:    func(c *config.Config) *string { return &c.StateFile },
	},
	{
		key:      "ui.accent",
		flag:     "ui-accent",
		usage:    "the accent color (name, #RRGGBB or ANSI 0-255)",
		setValue: &configSetUIAccent,
		unset:    &configUnsetUIAccent,
		field:    func(c *config.Config) *string { return &c.UI.Accent },
		validate: func(_ *config.Config, v string) (string, string) {
			if _, ok := ui.ParseAccent(v); !ok {
				return fmt.Sprintf("unrecognized accent %q", v), "Use a color name like orange, a hex value like #7aa2f7, or an ANSI code 0-255"
			}
			return "", ""
		},
	},
	{
		key:      "ui.code_theme",
		flag:     "ui-code-theme",
		usage:    "the syntax theme for code in rendered reports",
		setValue: &configSetUICodeTheme,
		unset:    &configUnsetUICodeTheme,
		field:    func(c *config.Config) *string { return &c.UI.CodeTheme },
	},
}

func loadGlobalConfigContextAllowMissing() (*globalConfigContext, error) {
	loaded, path, exists, err := loadGlobalConfigAllowMissingWithPath()
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = &config.Config{}
	}
	return &globalConfigContext{
		cfg:          loaded,
		configPath:   path,
		statePath:    config.ResolveStatePath(statePathFlag, path, loaded),
		configExists: exists,
	}, nil
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	servers := make(map[string]interface{}, len(ctx.cfg.Servers))
	for name, s := range ctx.cfg.Servers {
		servers[name] = map[string]interface{}{
			"api_url":   strings.TrimSpace(s.APIURL),
			"token_env": strings.TrimSpace(s.TokenEnv),
			"has_token": strings.TrimSpace(s.Token) != "",
		}
	}

	c := ctx.cfg
	return map[string]interface{}{
		"config_path":    ctx.configPath,
		"state_path":     ctx.statePath,
		"exists":         ctx.configExists,
		"default_server": strings.TrimSpace(c.DefaultServer),
		"timeout":        strings.TrimSpace(c.Timeout),
		"state_file":     strings.TrimSpace(c.StateFile),
		"servers":        servers,
		"ui": map[string]interface{}{
			"accent":     strings.TrimSpace(c.UI.Accent),
			"code_theme": strings.TrimSpace(c.UI.CodeTheme),
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadGlobalConfigContextAllowMissing()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.configExists {
		fmt.Printf("No config file at %s\n", ctx.configPath)
		fmt.Println(ui.Hint("Run 'hpt config init' to create one."))
		return nil
	}

	tbl := ui.NewTable(2)
	tbl.AddRow("config", ctx.configPath)
	tbl.AddRow("state", ctx.statePath)
	for _, f := range configFields {
		if v := strings.TrimSpace(*f.field(ctx.cfg)); v != "" {
			tbl.AddRow(f.key, v)
		}
	}
	fmt.Print(tbl.String())

	names := ctx.cfg.ServerNames()
	if len(names) == 0 {
		fmt.Println("servers: " + ui.Hint("(none)"))
		return nil
	}
	fmt.Println("servers:")
	servers := ui.NewTable(3)
	servers.Indent = "  "
	for _, name := range names {
		s := ctx.cfg.Servers[name]
		auth := ""
		switch {
		case strings.TrimSpace(s.Token) != "":
			auth = "token"
		case strings.TrimSpace(s.TokenEnv) != "":
			auth = "token from $" + strings.TrimSpace(s.TokenEnv)
		}
		servers.AddRow(ui.Name(name), s.APIURL, ui.Hint(auth))
	}
	fmt.Print(servers.String())
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global hpt config.toml settings",
	Long: `Manage global hpt config.toml settings.

Without a subcommand, shows the current values. Servers are managed with
'hpt server'.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented config.toml if there is none",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := config.ResolveConfigPath(configPath)
		_, statErr := os.Stat(target)
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return handleError(ErrFileReadError, statErr, "")
		}
		existed := statErr == nil

		path, err := config.CreateDefaultAt(target)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		switch {
		case isJSONOutput():
			outputSuccess(map[string]interface{}{"config_path": path, "created": !existed}, nil)
		case existed:
			fmt.Println(ui.Infof("Config already exists: %s", path))
		default:
			fmt.Println(ui.Successf("Created %s", path))
		}
		return nil
	},
}

// saveConfigChange writes ctx.cfg and reports which keys changed.
func saveConfigChange(ctx *globalConfigContext, changed []string, verb string) error {
	if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	ctx.configExists = true

	if isJSONOutput() {
		data := configData(ctx)
		data["changed"] = changed
		outputSuccess(data, nil)
		return nil
	}
	fmt.Println(ui.Successf("Updated %s", ctx.configPath))
	fmt.Printf("  %s: %s\n", verb, strings.Join(changed, ", "))
	return nil
}

func configFlagList() string {
	flags := make([]string, len(configFields))
	for i, f := range configFields {
		flags[i] = "--" + f.flag
	}
	return strings.Join(flags, "/")
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more global config.toml fields",
	Example: `  hpt config set --default-server workshop
  hpt config set --request-timeout 10s --ui-accent orange`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		var changed []string
		for _, f := range configFields {
			if !cmd.Flags().Changed(f.flag) {
				continue
			}
			value := strings.TrimSpace(*f.setValue)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("%s cannot be empty; use 'hpt config unset --%s' to clear it", f.flag, f.flag), "")
			}
			if f.validate != nil {
				if msg, suggestion := f.validate(ctx.cfg, value); msg != "" {
					return handleErrorMsg(ErrInvalidInput, msg, suggestion)
				}
			}
			*f.field(ctx.cfg) = value
			changed = append(changed, f.key)
		}
		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided; set at least one of "+configFlagList(), "")
		}
		return saveConfigChange(ctx, changed, "changed")
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more global config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !ctx.configExists {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", ctx.configPath), "Run 'hpt config init' first")
		}

		var changed []string
		for _, f := range configFields {
			if *f.unset {
				*f.field(ctx.cfg) = ""
				changed = append(changed, f.key)
			}
		}
		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields selected; pass one or more of "+configFlagList(), "")
		}
		return saveConfigChange(ctx, changed, "cleared")
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configSetCmd, configUnsetCmd, &cobra.Command{
		Use:   "show",
		Short: "Show current global config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	for _, f := range configFields {
		configSetCmd.Flags().StringVar(f.setValue, f.flag, "", "Set "+f.usage)
		configUnsetCmd.Flags().BoolVar(f.unset, f.flag, false, "Clear "+f.key)
	}

	rootCmd.AddCommand(configCmd)
}
