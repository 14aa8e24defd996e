package registration

import (
	"context"
	"net"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/host"
)

// HostInfo identifies this machine to the server.
type HostInfo struct {
	Hostname  string
	IPAddress string
	OSType    string
	OSVersion string
}

// CollectHostInfo gathers hostname, primary IPv4 and OS version. It only
// fails when no hostname can be determined at all.
func CollectHostInfo(ctx context.Context) (HostInfo, error) {
	info := HostInfo{OSType: runtime.GOOS}

	if stat, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = stat.Hostname
		info.OSVersion = stat.PlatformVersion
		if info.OSVersion == "" {
			info.OSVersion = stat.KernelVersion
		}
	}

	if info.Hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return info, err
		}
		info.Hostname = hostname
	}

	info.IPAddress = PrimaryIPv4(info.Hostname)
	return info, nil
}

// PrimaryIPv4 returns the first IPv4 address of an up, non-loopback
// interface, then whatever the hostname resolves to, then 127.0.0.1.
func PrimaryIPv4(hostname string) string {
	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
				continue
			}
			addrs, err := iface.Addrs()
			if err != nil {
				continue
			}
			for _, addr := range addrs {
				ipNet, ok := addr.(*net.IPNet)
				if !ok {
					continue
				}
				if ip4 := ipNet.IP.To4(); ip4 != nil && !ip4.IsLoopback() && !ip4.IsLinkLocalUnicast() {
					return ip4.String()
				}
			}
		}
	}

	if ips, err := net.LookupIP(hostname); err == nil {
		for _, ip := range ips {
			if ip4 := ip.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}

	return "127.0.0.1"
}
