//go:build linux

package linux

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DependencyInfo describes a click tool that could be installed.
type DependencyInfo struct {
	Name       string
	WhyNeeded  string
	InstallCmd string
}

// GenerateInstallCommand returns a distro-specific install command for a
// click tool, plus an optional note.
func GenerateInstallCommand(tool string, distro DistroInfo) (cmd string, note string) {
	switch tool {
	case "xdotool", "ydotool":
	default:
		return "", fmt.Sprintf("no package known for tool %q", tool)
	}

	switch distro.PkgManager {
	case "apt":
		cmd = "sudo apt update && sudo apt install " + tool
	case "dnf", "yum":
		cmd = fmt.Sprintf("sudo %s install %s", distro.PkgManager, tool)
	case "pacman":
		cmd = "sudo pacman -S " + tool
	case "zypper":
		cmd = "sudo zypper install " + tool
	case "apk":
		cmd = "sudo apk add " + tool
	default:
		cmd = fmt.Sprintf("Install %s using your distribution's package manager", tool)
	}
	if tool == "ydotool" {
		note = "ydotool needs the ydotoold daemon running"
	}
	return cmd, note
}

// CheckMissingDependencies lists the click tools that would enable a backend
// for the current display server.
func CheckMissingDependencies(caps Capabilities) []DependencyInfo {
	var missing []DependencyInfo
	distro := DetectDistribution()

	if !caps.YdotoolAvailable {
		cmd, note := GenerateInstallCommand("ydotool", distro)
		why := "clicks on both X11 and Wayland"
		if note != "" {
			why += " (" + note + ")"
		}
		missing = append(missing, DependencyInfo{Name: "ydotool", WhyNeeded: why, InstallCmd: cmd})
	}
	if caps.DisplayServer != DisplayServerWayland && !caps.XdotoolAvailable {
		cmd, _ := GenerateInstallCommand("xdotool", distro)
		missing = append(missing, DependencyInfo{Name: "xdotool", WhyNeeded: "clicks on X11", InstallCmd: cmd})
	}
	return missing
}

// FormatDependencyMessages explains how to enable a click backend.
func FormatDependencyMessages(missing []DependencyInfo, caps Capabilities) string {
	var b strings.Builder
	b.WriteString("no click backend available\n\n")
	if caps.UinputError != "" {
		b.WriteString(caps.UinputError)
		b.WriteString("\n\n")
	}
	for i, dep := range missing {
		fmt.Fprintf(&b, "%d. %s: %s\n   Install with: %s\n", i+1, dep.Name, dep.WhyNeeded, dep.InstallCmd)
	}
	return strings.TrimRight(b.String(), "\n")
}

// getInputGroupGID looks up the "input" group GID by parsing /etc/group.
func getInputGroupGID() int {
	file, err := os.Open("/etc/group")
	if err != nil {
		return -1
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), ":")
		if len(parts) >= 3 && parts[0] == "input" {
			if gid, err := strconv.Atoi(parts[2]); err == nil {
				return gid
			}
		}
	}
	return -1
}

func inInputGroup() bool {
	gid := getInputGroupGID()
	if gid == -1 {
		return false
	}
	groups, err := os.Getgroups()
	if err != nil {
		return false
	}
	for _, g := range groups {
		if g == gid {
			return true
		}
	}
	return false
}

// CheckUinputPermissions checks if uinput is writable and returns a
// user-facing explanation if not.
func CheckUinputPermissions() (hasAccess bool, errorMessage string) {
	if _, err := os.Stat(uinputDevicePath); os.IsNotExist(err) {
		return false, "uinput device not found: " + uinputDevicePath + " does not exist. Try: sudo modprobe uinput"
	}

	f, err := os.OpenFile(uinputDevicePath, os.O_WRONLY, 0)
	if err != nil {
		if !inInputGroup() {
			return false, "uinput permission denied. Add your user to the 'input' group:\n  sudo usermod -aG input $USER\nThen log out and back in."
		}
		return false, fmt.Sprintf("uinput permission denied: %v\nCreate a udev rule: echo 'KERNEL==\"uinput\", MODE=\"0664\", GROUP=\"input\"' | sudo tee /etc/udev/rules.d/99-uinput.rules", err)
	}
	f.Close()
	return true, ""
}
