// Package buildinfo reports which hpt binary is running.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
)

// Set with -ldflags "-X" by release builds; empty otherwise.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const modulePath = "github.com/hobbyparts/hpt"

// Info describes the running binary.
type Info struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

// ReadBuildInfo is swapped out in tests.
var ReadBuildInfo = debug.ReadBuildInfo

// Current merges the Go toolchain's embedded build information with the
// ldflags values. Embedded VCS data wins; ldflags fill the gaps.
func Current() Info {
	info := Info{
		Version:    "devel",
		ModulePath: modulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	if bi, ok := ReadBuildInfo(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "GOOS":
				info.GOOS = s.Value
			case "GOARCH":
				info.GOARCH = s.Value
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.CommitTime = s.Value
			case "vcs.modified":
				info.Modified, _ = strconv.ParseBool(s.Value)
			}
		}
	}

	if info.Version == "devel" && Version != "" && Version != "(devel)" {
		info.Version = Version
	}
	if info.Commit == "" {
		info.Commit = Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = Date
	}
	return info
}

// ShortCommit is the first 12 characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}

// UserAgent identifies hpt to the backend, e.g. "hpt/v0.3.0 (linux/amd64)".
func (i Info) UserAgent() string {
	return fmt.Sprintf("hpt/%s (%s/%s)", i.Version, i.GOOS, i.GOARCH)
}
