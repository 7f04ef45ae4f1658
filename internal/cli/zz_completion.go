package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/config"
	"github.com/hobbyparts/hpt/internal/ui"
)

// Completion lives in a zz_ file so every command it decorates has already
// been registered by its own init.

func init() {
	for _, cmd := range []*cobra.Command{serverUseCmd, serverPinCmd, serverRemoveCmd} {
		cmd.ValidArgsFunction = firstArg(completeServers)
	}
	_ = rootCmd.RegisterFlagCompletionFunc("server", flagValues(completeServers))
	_ = configSetCmd.RegisterFlagCompletionFunc("default-server", flagValues(completeServers))
	_ = configSetCmd.RegisterFlagCompletionFunc("ui-accent", flagValues(func(*cobra.Command) []string {
		return ui.AccentNames()
	}))
	_ = configSetCmd.RegisterFlagCompletionFunc("ui-code-theme", flagValues(func(*cobra.Command) []string {
		return ui.CodeThemes()
	}))
}

// candidateSource lists every possible value; filtering happens in the wrappers.
type candidateSource func(cmd *cobra.Command) []string

type completionFunc = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective)

func firstArg(src candidateSource) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return filterCandidates(src(cmd), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func flagValues(src candidateSource) completionFunc {
	return func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterCandidates(src(cmd), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeServers reads config.toml only. Completion must stay fast and
// offline, so no backend is contacted.
func completeServers(cmd *cobra.Command) []string {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.LoadFrom(config.ResolveConfigPath(path))
	if err != nil || loaded == nil {
		return nil
	}
	return loaded.ServerNames()
}

func filterCandidates(candidates []string, toComplete string) []string {
	var out []string
	for _, c := range candidates {
		if matchesCompletion(c, toComplete) {
			out = append(out, c)
		}
	}
	return out
}

// matchesCompletion is a case-insensitive prefix match, applied per
// dash-separated segment when the input has dashes: "ga-s" matches
// "garage-shelf".
func matchesCompletion(candidate, input string) bool {
	candidate, input = strings.ToLower(candidate), strings.ToLower(input)
	if strings.HasPrefix(candidate, input) {
		return true
	}
	if !strings.Contains(input, "-") {
		return false
	}

	want := strings.Split(input, "-")
	have := strings.Split(candidate, "-")
	if len(have) < len(want) {
		return false
	}
	for i, seg := range want {
		if !strings.HasPrefix(have[i], seg) {
			return false
		}
	}
	return true
}
