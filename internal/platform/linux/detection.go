//go:build linux

// Package linux provides the Linux click backends: a uinput virtual mouse and
// the xdotool/ydotool command-line tools.
package linux

import (
	"bufio"
	"os"
	"strings"
)

// Display server types.
const (
	DisplayServerWayland = "wayland"
	DisplayServerX11     = "x11"
	DisplayServerUnknown = "unknown"
)

// Desktop environment types.
const (
	DesktopCosmic  = "cosmic"
	DesktopGNOME   = "gnome"
	DesktopKDE     = "kde"
	DesktopXFCE    = "xfce"
	DesktopMATE    = "mate"
	DesktopUnknown = "unknown"
)

// Capabilities tracks available click tools and system information.
type Capabilities struct {
	XdotoolAvailable   bool
	YdotoolAvailable   bool
	UinputAccess       bool
	UinputError        string
	DisplayServer      string
	DesktopEnvironment string
}

// DetectCapabilities detects available tools and system configuration.
func DetectCapabilities() Capabilities {
	access, msg := CheckUinputPermissions()
	return Capabilities{
		XdotoolAvailable:   hasCommand("xdotool"),
		YdotoolAvailable:   hasCommand("ydotool"),
		UinputAccess:       access,
		UinputError:        msg,
		DisplayServer:      DetectDisplayServer(),
		DesktopEnvironment: DetectDesktopEnvironment(),
	}
}

// DetectDesktopEnvironment detects the current desktop environment.
func DetectDesktopEnvironment() string {
	xdgDesktop := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	desktopSession := strings.ToLower(os.Getenv("DESKTOP_SESSION"))

	contains := func(names ...string) bool {
		for _, n := range names {
			if strings.Contains(xdgDesktop, n) || strings.Contains(desktopSession, n) {
				return true
			}
		}
		return false
	}

	switch {
	case contains(DesktopCosmic, "pop"):
		return DesktopCosmic
	case contains(DesktopGNOME):
		return DesktopGNOME
	case contains(DesktopKDE, "plasma"):
		return DesktopKDE
	case contains(DesktopXFCE):
		return DesktopXFCE
	case contains(DesktopMATE):
		return DesktopMATE
	default:
		return DesktopUnknown
	}
}

// DetectDisplayServer detects whether running on Wayland or X11.
func DetectDisplayServer() string {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if os.Getenv("XDG_SESSION_TYPE") == DisplayServerWayland {
		return DisplayServerWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	if os.Getenv("XDG_SESSION_TYPE") == DisplayServerX11 {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// DistroInfo contains information about the detected Linux distribution.
type DistroInfo struct {
	Name       string
	PkgManager string
}

// DetectDistribution detects the Linux distribution and package manager.
func DetectDistribution() DistroInfo {
	file, err := os.Open("/etc/os-release")
	if err != nil {
		return DistroInfo{Name: "unknown", PkgManager: detectPackageManager()}
	}
	defer file.Close()

	var id, idLike string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "ID=") {
			id = strings.Trim(strings.TrimPrefix(line, "ID="), "\"")
		}
		if strings.HasPrefix(line, "ID_LIKE=") {
			idLike = strings.Trim(strings.TrimPrefix(line, "ID_LIKE="), "\"")
		}
	}

	distro := strings.ToLower(id)
	if distro == "" {
		distro = "unknown"
	}
	return DistroInfo{Name: distro, PkgManager: packageManagerFor(distro, idLike)}
}

func packageManagerFor(distro, idLike string) string {
	switch {
	case distro == "debian" || distro == "ubuntu" || distro == "pop" ||
		strings.Contains(idLike, "debian") || strings.Contains(idLike, "ubuntu"):
		return "apt"
	case distro == "fedora" || distro == "rhel" || distro == "centos" ||
		strings.Contains(idLike, "fedora") || strings.Contains(idLike, "rhel"):
		if hasCommand("dnf") {
			return "dnf"
		}
		return "yum"
	case distro == "arch" || distro == "manjaro" || strings.Contains(idLike, "arch"):
		return "pacman"
	case strings.HasPrefix(distro, "opensuse") || strings.Contains(idLike, "suse"):
		return "zypper"
	case distro == "alpine":
		return "apk"
	default:
		return detectPackageManager()
	}
}

func detectPackageManager() string {
	for _, m := range []string{"apt", "dnf", "yum", "pacman", "zypper", "apk"} {
		if hasCommand(m) {
			return m
		}
	}
	return "unknown"
}
