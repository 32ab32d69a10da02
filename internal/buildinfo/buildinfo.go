// Package buildinfo reports which filabel build is running.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/aidanlsb/filabel/internal/buildinfo.Version=..."
// for release builds. When set they take precedence over the build info the
// toolchain embeds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

var readBuildInfo = debug.ReadBuildInfo

// Info describes a filabel binary.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Built    string `json:"built,omitempty"`
	Dirty    bool   `json:"dirty,omitempty"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

// Current returns the build information of the running binary. Local builds
// without a module version report "devel".
func Current() Info {
	info := Info{
		Version:  "devel",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.Go = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.Built = s.Value
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}

	if Version != "" {
		info.Version = Version
	}
	if Commit != "" {
		info.Commit = Commit
	}
	if Date != "" {
		info.Built = Date
	}
	return info
}

// String renders the info on one line, e.g.
// "filabel v0.2.0 (3f2a9c1d04be, 2026-02-14T17:00:00Z) go1.23.4 linux/amd64".
func (i Info) String() string {
	s := "filabel " + i.Version
	if i.Commit != "" {
		commit := i.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		if i.Dirty {
			commit += "-dirty"
		}
		if i.Built != "" {
			commit += ", " + i.Built
		}
		s += " (" + commit + ")"
	}
	return fmt.Sprintf("%s %s %s", s, i.Go, i.Platform)
}
