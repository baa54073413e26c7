// Package buildtime holds values given when binaries are built.
//
// Set them with ldflags, like:
//
//	go build -ldflags "-X github.com/opst/smsctl/pkg/buildtime.version=v1.0.0 -X github.com/opst/smsctl/pkg/buildtime.revision=$(git rev-parse HEAD)"
package buildtime

import "runtime/debug"

var version = "devel"

var revision = ""

// version string when this smsctl has been built.
func VERSION() string {
	return version
}

// GIT_REVISION returns the commit which this binary is built from.
//
// When it is not given by ldflags, the vcs revision recorded by the go command is used.
func GIT_REVISION() string {
	if revision != "" {
		return revision
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

func VersionString() string {
	return VERSION() + " (commit: " + GIT_REVISION() + ")"
}
