package firewall

import "runtime"

// Backend renders the platform firewall utility invocations. It never runs
// anything itself.
type Backend interface {
	Name() string
	StatusCommand() (name string, args []string)
	SetStateCommand(on bool) (name string, args []string)
}

// Netsh drives Windows Defender Firewall through netsh advfirewall. The state
// applies to the domain, private and public profiles at once.
type Netsh struct{}

func (Netsh) Name() string { return "netsh" }

func (Netsh) StatusCommand() (string, []string) {
	return "netsh", []string{"advfirewall", "show", "allprofiles", "state"}
}

func (Netsh) SetStateCommand(on bool) (string, []string) {
	return "netsh", []string{"advfirewall", "set", "allprofiles", "state", stateValue(on)}
}

// UFW drives Uncomplicated Firewall on Linux lab machines. ufw has a single
// global state rather than profiles.
type UFW struct{}

func (UFW) Name() string { return "ufw" }

func (UFW) StatusCommand() (string, []string) {
	return "ufw", []string{"status", "verbose"}
}

func (UFW) SetStateCommand(on bool) (string, []string) {
	if on {
		// --force skips the "may disrupt existing ssh connections" prompt
		return "ufw", []string{"--force", "enable"}
	}
	return "ufw", []string{"disable"}
}

// DefaultBackend picks the backend for the running OS.
func DefaultBackend() Backend {
	if runtime.GOOS == "windows" {
		return Netsh{}
	}
	return UFW{}
}

func stateValue(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
