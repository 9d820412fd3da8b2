// Package misc keeps build time information.
package misc

import "runtime/debug"

// set by linker: -X htmltree/misc.version=... -X htmltree/misc.buildHash=...
var (
	version   = "dev"
	buildHash = ""
)

const appName = "htmltree"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash provided at build time, falling back to VCS
// information embedded by the toolchain.
func GetGitHash() string {
	if len(buildHash) > 0 {
		return buildHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
