package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser opens url in the default system browser on macOS, Linux, or
// Windows.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch rt := getRuntime(); rt {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
	case "windows":
		name, args = "cmd", []string{"/c", "start"}
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	cmd := exec.Command(name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
