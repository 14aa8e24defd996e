package version

import "runtime"

// Version is set at build time via ldflags
var Version = "dev"

// UserAgent is sent with every request to the management server.
func UserAgent() string {
	return "agent-installer/" + Version + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
