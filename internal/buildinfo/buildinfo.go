// Package buildinfo holds identifiers stamped in with -ldflags:
//
//	go build -ldflags "-X mandelzoom/internal/buildinfo.Version=v0.2.0 -X mandelzoom/internal/buildinfo.Commit=$(git rev-parse --short HEAD) -X mandelzoom/internal/buildinfo.Date=$(date -u +%F)"
package buildinfo

import "runtime/debug"

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Revision returns Commit, or the VCS revision recorded by the go tool when
// the binary was built from a checkout without ldflags.
func Revision() string {
	if Commit != "" {
		return Commit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}

// Short is the compact identifier shown in window titles and log records.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if rev := Revision(); rev != "unknown" {
		return "dev-" + rev
	}
	return "dev"
}

// Long is Short plus the build date, when one was stamped in.
func Long() string {
	if Date == "" {
		return Short()
	}
	return Short() + " (" + Date + ")"
}
