//go:build !windows

package browser

import "os/exec"

func newCommand(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...) //nolint:gosec // G204: browser command comes from user settings
}
