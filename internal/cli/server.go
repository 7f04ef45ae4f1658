package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/config"
	"github.com/hobbyparts/hpt/internal/ui"
)

// serverContext is config.toml and state.toml loaded together, since server
// commands read one and often write the other.
type serverContext struct {
	cfg        *config.Config
	state      *config.State
	configPath string
	statePath  string
}

type serverRow struct {
	Name      string `json:"name"`
	APIURL    string `json:"api_url"`
	TokenEnv  string `json:"token_env,omitempty"`
	HasToken  bool   `json:"has_token"`
	IsDefault bool   `json:"is_default"`
	IsActive  bool   `json:"is_active"`
}

// currentServerInfo explains which server a backend command would use.
type currentServerInfo struct {
	Name          string           `json:"name"`
	Source        string           `json:"source"`
	ActiveMissing bool             `json:"active_missing"`
	Endpoint      *config.Endpoint `json:"endpoint"`
}

var (
	serverAddReplace         bool
	serverAddPin             bool
	serverAddToken           string
	serverAddTokenEnv        string
	serverRemoveClearDefault bool
	serverRemoveClearActive  bool
)

const serverListHint = "Run 'hpt server list' to see configured servers"

func loadServerContext() (*serverContext, error) {
	cfg, cfgPath, err := loadGlobalConfigWithPath()
	if err != nil {
		return nil, err
	}
	statePath := config.ResolveStatePath(statePathFlag, cfgPath, cfg)
	state, err := config.LoadState(statePath)
	if err != nil {
		return nil, err
	}
	return &serverContext{cfg: cfg, state: state, configPath: cfgPath, statePath: statePath}, nil
}

func (ctx *serverContext) activeName() string {
	return strings.TrimSpace(ctx.state.ActiveServer)
}

// serverRows lists configured servers by name. It also returns the default
// and active names, and whether the active name is missing from config.
func serverRows(cfg *config.Config, state *config.State) (rows []serverRow, defaultName, activeName string, activeMissing bool) {
	defaultName = strings.TrimSpace(cfg.DefaultServer)
	if state != nil {
		activeName = strings.TrimSpace(state.ActiveServer)
	}
	_, known := cfg.Servers[activeName]
	activeMissing = activeName != "" && !known

	for _, name := range cfg.ServerNames() {
		s := cfg.Servers[name]
		rows = append(rows, serverRow{
			Name:      name,
			APIURL:    s.APIURL,
			TokenEnv:  s.TokenEnv,
			HasToken:  serverAuthLabel(s) != "",
			IsDefault: name == defaultName,
			IsActive:  name == activeName,
		})
	}
	if rows == nil {
		rows = []serverRow{}
	}
	return rows, defaultName, activeName, activeMissing
}

// serverMarker is the two-character list prefix: '>' active, '*' default.
func serverMarker(row serverRow) string {
	marker := []byte("  ")
	if row.IsActive {
		marker[0] = '>'
	}
	if row.IsDefault {
		marker[1] = '*'
	}
	return string(marker)
}

func serverAuthLabel(s config.ServerConfig) string {
	switch {
	case strings.TrimSpace(s.Token) != "":
		return "token"
	case strings.TrimSpace(s.TokenEnv) != "":
		return "token from $" + strings.TrimSpace(s.TokenEnv)
	}
	return ""
}

func resolveCurrentServer(ctx *serverContext) (*currentServerInfo, error) {
	active := ctx.activeName()
	ep, err := config.ResolveEndpoint(ctx.cfg, config.Overrides{
		Server:       serverName,
		APIURL:       apiURLFlag,
		Token:        tokenFlag,
		ActiveServer: active,
	}, os.Getenv)
	if err != nil {
		return nil, err
	}

	info := &currentServerInfo{Name: ep.Server, Endpoint: ep}
	switch {
	case strings.TrimSpace(serverName) != "":
		info.Source = "flag"
	case active != "" && ep.Server == active:
		info.Source = "active_server"
	case active != "":
		info.Source = "default_server_fallback"
		info.ActiveMissing = true
	case ep.Server != "":
		info.Source = "default_server"
	default:
		info.Source = "none"
	}
	return info, nil
}

func runServerList(cmd *cobra.Command, args []string) error {
	ctx, err := loadServerContext()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	rows, defaultName, activeName, activeMissing := serverRows(ctx.cfg, ctx.state)
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"config_path":    ctx.configPath,
			"state_path":     ctx.statePath,
			"default_server": defaultName,
			"active_server":  activeName,
			"active_missing": activeMissing,
			"servers":        rows,
		}, &Meta{Count: len(rows)})
		return nil
	}

	if len(rows) == 0 {
		fmt.Printf("No servers configured in %s.\n\n", ctx.configPath)
		fmt.Println("Add one with:")
		fmt.Println("  hpt server add home http://localhost:5000 --pin")
		fmt.Println()
		fmt.Println(ui.Hint(fmt.Sprintf("Until then hpt uses $%s or %s.", config.EnvAPIURL, config.DefaultAPIURL)))
		return nil
	}

	tbl := ui.NewTable(4)
	tbl.Gap = 1
	for _, row := range rows {
		tbl.AddRow(serverMarker(row), row.Name, "-> "+row.APIURL, ui.Hint(serverAuthLabel(ctx.cfg.Servers[row.Name])))
	}
	fmt.Print(tbl.String())
	fmt.Println()
	fmt.Println(ui.Hint("> active (state)   * default (config)"))
	fmt.Println(ui.Hint("config: " + ctx.configPath))
	fmt.Println(ui.Hint("state:  " + ctx.statePath))
	if activeMissing {
		fmt.Println(ui.Warning(fmt.Sprintf("active server '%s' in state is not configured", activeName)))
	}
	return nil
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage configured backend servers and active selection",
	Long: `Manage configured backend servers and active selection.

Servers are named in config.toml. 'hpt server use' records the active server
in state.toml; 'hpt server pin' sets default_server in config.toml, which is
used when no server is active.`,
	Args: cobra.NoArgs,
	RunE: runServerList,
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured servers",
	Args:  cobra.NoArgs,
	RunE:  runServerList,
}

var serverCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the backend commands will talk to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadServerContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		current, err := resolveCurrentServer(ctx)
		if err != nil {
			return handleError(ErrServerNotFound, err, serverListHint)
		}
		ep := current.Endpoint

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":           current.Name,
				"api_url":        ep.APIURL,
				"api_url_source": ep.URLSource,
				"has_token":      ep.HasToken,
				"source":         current.Source,
				"active_missing": current.ActiveMissing,
				"config_path":    ctx.configPath,
				"state_path":     ctx.statePath,
			}, nil)
			return nil
		}

		name := current.Name
		if name == "" {
			name = ui.Hint("(none)")
		}
		token := "no"
		if ep.HasToken {
			token = "yes"
		}
		tbl := ui.NewTable(2)
		tbl.AddRow("server", name+" "+ui.Hint("via "+current.Source))
		tbl.AddRow("api_url", ep.APIURL+" "+ui.Hint("from "+string(ep.URLSource)))
		tbl.AddRow("token", token)
		fmt.Print(tbl.String())
		if current.ActiveMissing {
			fmt.Println(ui.Warning(fmt.Sprintf("active server '%s' is missing; using the default", ctx.activeName())))
		}
		return nil
	},
}

var serverUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a server active (stored in state.toml)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		ctx, err := loadServerContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		server, err := ctx.cfg.GetServer(name)
		if err != nil {
			return handleError(ErrServerNotFound, err, serverListHint)
		}

		ctx.state.ActiveServer = name
		if err := config.SaveState(ctx.statePath, ctx.state); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"active_server": name,
				"api_url":       server.APIURL,
				"state_path":    ctx.statePath,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Using %s -> %s", ui.Name(name), server.APIURL))
		return nil
	},
}

var serverClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the active server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadServerContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		prev := ctx.activeName()
		ctx.state.ActiveServer = ""
		if err := config.SaveState(ctx.statePath, ctx.state); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		switch {
		case isJSONOutput():
			outputSuccess(map[string]interface{}{
				"cleared":    true,
				"previous":   prev,
				"state_path": ctx.statePath,
			}, nil)
		case prev == "":
			fmt.Println(ui.Infof("No active server was set."))
		default:
			fmt.Println(ui.Successf("No longer using %s", ui.Name(prev)))
		}
		return nil
	},
}

var serverPinCmd = &cobra.Command{
	Use:   "pin <name>",
	Short: "Make a server the default (stored in config.toml)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		ctx, err := loadServerContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		server, err := ctx.cfg.GetServer(name)
		if err != nil {
			return handleError(ErrServerNotFound, err, serverListHint)
		}

		ctx.cfg.DefaultServer = name
		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"default_server": name,
				"api_url":        server.APIURL,
				"config_path":    ctx.configPath,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Default server is now %s -> %s", ui.Name(name), server.APIURL))
		return nil
	},
}

var serverAddCmd = &cobra.Command{
	Use:   "add <name> <api-url>",
	Short: "Add a backend server to config.toml",
	Long: `Add a backend server to config.toml.

Prefer --token-env over --store-token: the config file then names an environment
variable instead of holding the secret.`,
	Example: `  hpt server add home http://localhost:5000 --pin
  hpt server add club https://parts.example.org --token-env CLUB_TOKEN`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return handleErrorMsg(ErrMissingArgument, "server name is required", "")
		}
		apiURL, err := config.NormalizeAPIURL(strings.TrimSpace(args[1]))
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use a full URL such as http://localhost:5000")
		}

		ctx, err := loadServerContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		prev, existed := ctx.cfg.Servers[name]
		if existed && !serverAddReplace {
			return handleErrorMsg(ErrDuplicateName, fmt.Sprintf("server '%s' already exists", name), "Use --replace to update it")
		}

		if ctx.cfg.Servers == nil {
			ctx.cfg.Servers = map[string]config.ServerConfig{}
		}
		ctx.cfg.Servers[name] = config.ServerConfig{
			APIURL:   apiURL,
			Token:    strings.TrimSpace(serverAddToken),
			TokenEnv: strings.TrimSpace(serverAddTokenEnv),
		}
		if serverAddPin {
			ctx.cfg.DefaultServer = name
		}
		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":             name,
				"api_url":          apiURL,
				"config_path":      ctx.configPath,
				"replaced":         existed,
				"previous_api_url": prev.APIURL,
				"pinned":           serverAddPin,
				"default_server":   ctx.cfg.DefaultServer,
			}, nil)
			return nil
		}

		verb := "Added"
		if existed {
			verb = "Updated"
		}
		fmt.Println(ui.Successf("%s %s -> %s", verb, ui.Name(name), apiURL))
		if serverAddPin {
			fmt.Println(ui.Hint("  now the default server"))
		}
		return nil
	},
}

var serverRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a backend server from config.toml",
	Long: `Remove a backend server from config.toml.

Removing the default or active server needs --clear-default or --clear-active,
so hpt never silently falls back to another backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return handleErrorMsg(ErrMissingArgument, "server name is required", "")
		}
		ctx, err := loadServerContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		isDefault := name == strings.TrimSpace(ctx.cfg.DefaultServer)
		isActive := name == ctx.activeName()
		if isDefault && !serverRemoveClearDefault {
			return handleErrorMsg(ErrConfirmRequired, fmt.Sprintf("server '%s' is the current default server", name),
				"Use --clear-default to clear default_server as part of removal, or pin another server first")
		}
		if isActive && !serverRemoveClearActive {
			return handleErrorMsg(ErrConfirmRequired, fmt.Sprintf("server '%s' is the current active server", name),
				"Use --clear-active to clear active_server as part of removal, or switch servers first")
		}

		removed, ok := ctx.cfg.Servers[name]
		if !ok {
			return handleErrorMsg(ErrServerNotFound, fmt.Sprintf("server '%s' not found in config", name), serverListHint)
		}
		delete(ctx.cfg.Servers, name)
		if isDefault {
			ctx.cfg.DefaultServer = ""
		}
		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if isActive {
			ctx.state.ActiveServer = ""
			if err := config.SaveState(ctx.statePath, ctx.state); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":            name,
				"removed_api_url": removed.APIURL,
				"default_cleared": isDefault,
				"active_cleared":  isActive,
				"config_path":     ctx.configPath,
				"state_path":      ctx.statePath,
			}, nil)
			return nil
		}

		fmt.Println(ui.Successf("Removed %s (%s)", ui.Name(name), removed.APIURL))
		if isDefault {
			fmt.Println(ui.Hint("  default_server cleared"))
		}
		if isActive {
			fmt.Println(ui.Hint("  active server cleared"))
		}
		return nil
	},
}

func init() {
	serverCmd.AddCommand(serverListCmd, serverCurrentCmd, serverUseCmd, serverPinCmd, serverClearCmd, serverAddCmd, serverRemoveCmd)

	serverAddCmd.Flags().BoolVar(&serverAddReplace, "replace", false, "Replace the server if the name already exists")
	serverAddCmd.Flags().BoolVar(&serverAddPin, "pin", false, "Also set this server as default_server")
	serverAddCmd.Flags().StringVar(&serverAddToken, "store-token", "", "Bearer token stored in config.toml")
	serverAddCmd.Flags().StringVar(&serverAddTokenEnv, "token-env", "", "Environment variable holding the bearer token")
	serverRemoveCmd.Flags().BoolVar(&serverRemoveClearDefault, "clear-default", false, "Clear default_server when removing the default")
	serverRemoveCmd.Flags().BoolVar(&serverRemoveClearActive, "clear-active", false, "Clear active_server when removing the active server")

	rootCmd.AddCommand(serverCmd)
}
