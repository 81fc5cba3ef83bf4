// Package version holds the build version, overridable at link time:
//
//	go build -ldflags "-X github.com/Dicklesworthstone/outline_viewer/pkg/version.Version=v1.2.3"
package version

// Version is the build version string.
var Version = "dev"
