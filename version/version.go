package version

import (
	"runtime/debug"
	"strings"
)

// Product is the client name used in the User-Agent header.
const Product = "lametric-local"

// ModulePath is the import path of this module.
const ModulePath = "github.com/kbukum/lametric"

// Version is the library release. Set at link time for tagged builds.
var Version = "1.2.0"

// Info describes the running library build.
type Info struct {
	Version   string `json:"version"`
	Module    string `json:"module"`
	GoVersion string `json:"go_version"`
	Sum       string `json:"sum,omitempty"`
	IsRelease bool   `json:"is_release"`
}

// GetVersionInfo returns the library version. When the library is consumed
// as a dependency the module version recorded in the binary's build info
// takes precedence over the compiled-in default.
func GetVersionInfo() *Info {
	info := &Info{
		Version: Version,
		Module:  ModulePath,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, dep := range bi.Deps {
			if dep.Path != ModulePath {
				continue
			}
			if dep.Replace != nil {
				dep = dep.Replace
			}
			if dep.Version != "" && dep.Version != "(devel)" {
				info.Version = strings.TrimPrefix(dep.Version, "v")
				info.Sum = dep.Sum
			}
			break
		}
	}

	info.IsRelease = info.Version != "dev" && !strings.Contains(info.Version, "-")
	return info
}

// UserAgent returns the default User-Agent header value,
// e.g. "lametric-local/1.2.0".
func UserAgent() string {
	return Product + "/" + Version
}
