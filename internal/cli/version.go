package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/buildinfo"
	"github.com/hobbyparts/hpt/internal/ui"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hpt version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildinfo.Current()

		switch {
		case isJSONOutput():
			outputSuccess(info, nil)
		case versionShort:
			fmt.Println(info.Version)
		default:
			fmt.Println(ui.Header("hpt " + info.Version))
			tbl := ui.NewTable(2)
			tbl.Indent = "  "
			tbl.AddRow("module", info.ModulePath)
			if info.Commit != "" {
				commit := info.ShortCommit()
				if info.Modified {
					commit += " " + ui.Hint("(modified)")
				}
				tbl.AddRow("commit", commit)
			}
			if info.CommitTime != "" {
				tbl.AddRow("built", info.CommitTime)
			}
			tbl.AddRow("go", info.GoVersion)
			tbl.AddRow("platform", info.GOOS+"/"+info.GOARCH)
			fmt.Print(tbl.String())
		}
		return nil
	},
}

func userAgent() string {
	return buildinfo.Current().UserAgent()
}

// versionString is what "hpt --version" prints after the program name.
func versionString() string {
	info := buildinfo.Current()
	if info.Commit == "" {
		return info.Version
	}
	return info.Version + " (" + info.ShortCommit() + ", modified=" + strconv.FormatBool(info.Modified) + ")"
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version")
	rootCmd.Version = versionString()
	rootCmd.AddCommand(versionCmd)
}
